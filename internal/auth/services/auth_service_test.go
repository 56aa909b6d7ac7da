package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/internal/auth/models"
	"github.com/c14220110/pemeriksaan-gateway/internal/clients"
	workflowmodels "github.com/c14220110/pemeriksaan-gateway/internal/workflow/models"
	workflowservices "github.com/c14220110/pemeriksaan-gateway/internal/workflow/services"
	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

type fakeIdentity struct {
	loginCalls  int32
	logoutCalls int32
	role        interface{}
	rejectLogin bool
	srv         *httptest.Server
}

func newFakeIdentity(role interface{}) *fakeIdentity {
	f := &fakeIdentity{role: role}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.loginCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		if f.rejectLogin {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "username atau password salah"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "login sukses",
			"data": map[string]interface{}{
				"id_karyawan": "K-3",
				"nama":        "dr. Budi",
				"username":    "budi",
				"role":        f.role,
				"id_poli":     2,
				"token":       "remote-token-xyz",
			},
		})
	})
	mux.HandleFunc("POST /api/logout", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.logoutCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "OK"})
	})
	f.srv = httptest.NewServer(mux)
	return f
}

func newAuthService(t *testing.T, fake *fakeIdentity) (*AuthService, SessionStore, *workflowservices.MemoryDraftStore) {
	t.Helper()
	t.Cleanup(fake.srv.Close)
	t.Setenv("JWT_SECRET", "rahasia-tes")
	store := NewMemorySessionStore()
	drafts := workflowservices.NewMemoryDraftStore()
	svc := NewAuthService(clients.NewAuthClient(fake.srv.URL, 5*time.Second, zap.NewNop()), store, drafts, zap.NewNop())
	return svc, store, drafts
}

func TestLogin_SavesCanonicalIdentity(t *testing.T) {
	fake := newFakeIdentity("DOKTER")
	svc, store, _ := newAuthService(t, fake)

	res, err := svc.Login(context.Background(), "budi", "sandi123", 1)
	require.NoError(t, err)

	assert.Equal(t, models.RoleDokter, res.Identity.Role)
	assert.Equal(t, "remote-token-xyz", res.Identity.Token)
	assert.Equal(t, 2, res.Identity.IDPoli, "id_poli dari identity service menang atas input form")
	assert.NotEmpty(t, res.GatewayToken)

	cur := store.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "K-3", cur.IDKaryawan)
}

func TestLogin_LegacyNumericRole(t *testing.T) {
	fake := newFakeIdentity(4) // kode lama untuk perawat
	svc, _, _ := newAuthService(t, fake)

	res, err := svc.Login(context.Background(), "siti", "sandi123", 1)
	require.NoError(t, err)
	assert.Equal(t, models.RolePerawat, res.Identity.Role)
}

// Role yang tidak dikenali dari identity service tidak boleh menghasilkan
// session setengah jadi.
func TestLogin_UnknownRoleLeavesNoSession(t *testing.T) {
	fake := newFakeIdentity("resepsionis")
	svc, store, _ := newAuthService(t, fake)

	_, err := svc.Login(context.Background(), "agus", "sandi123", 1)
	ve := errs.AsValidation(err)
	require.NotNil(t, ve)
	assert.True(t, ve.HasField("role"))
	assert.Nil(t, store.Current())
}

func TestLogin_EmptyCredentialsNeverReachNetwork(t *testing.T) {
	fake := newFakeIdentity("DOKTER")
	svc, _, _ := newAuthService(t, fake)

	_, err := svc.Login(context.Background(), "  ", "", 1)
	ve := errs.AsValidation(err)
	require.NotNil(t, ve)
	assert.True(t, ve.HasField("username"))
	assert.True(t, ve.HasField("password"))
	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.loginCalls))
}

func TestLogin_RejectedCredentials(t *testing.T) {
	fake := newFakeIdentity("DOKTER")
	fake.rejectLogin = true
	svc, store, _ := newAuthService(t, fake)

	_, err := svc.Login(context.Background(), "budi", "salah", 1)
	assert.True(t, errs.IsAuth(err))
	assert.Nil(t, store.Current())
}

// Identitas baru menimpa identitas lama; hanya ada satu session aktif.
func TestLogin_OverwritesPreviousSession(t *testing.T) {
	fake := newFakeIdentity("DOKTER")
	svc, store, _ := newAuthService(t, fake)

	require.NoError(t, store.Save(models.Identity{IDKaryawan: "K-99", Role: models.RolePerawat, Token: "lama"}))

	_, err := svc.Login(context.Background(), "budi", "sandi123", 1)
	require.NoError(t, err)

	cur := store.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "K-3", cur.IDKaryawan)
}

func TestLogout_ClearsSessionEvenWhenRemoteFails(t *testing.T) {
	fake := newFakeIdentity("DOKTER")
	svc, store, _ := newAuthService(t, fake)

	_, err := svc.Login(context.Background(), "budi", "sandi123", 1)
	require.NoError(t, err)

	fake.srv.Close() // logout remote pasti gagal
	require.NoError(t, svc.Logout(context.Background()))
	assert.Nil(t, store.Current())
}

// Logout eksplisit membersihkan seluruh draft resep bersama identitas.
// Bandingkan dengan token kedaluwarsa di tengah workflow, yang membiarkan
// draft supaya login ulang bisa melanjutkan.
func TestLogout_PurgesResepDrafts(t *testing.T) {
	fake := newFakeIdentity("DOKTER")
	svc, store, drafts := newAuthService(t, fake)

	_, err := svc.Login(context.Background(), "budi", "sandi123", 1)
	require.NoError(t, err)
	require.NoError(t, drafts.Put("457459", workflowmodels.ResepDraft{IDResep: "RSP001", Lines: 1}))

	require.NoError(t, svc.Logout(context.Background()))

	assert.Nil(t, store.Current())
	draft, derr := drafts.Get("457459")
	require.NoError(t, derr)
	assert.Nil(t, draft, "draft resep tidak boleh tertinggal setelah logout")
}
