package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

func respondWith(t *testing.T, code int, body interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClassify_TimeoutBecomesNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	c := NewStatusClient(srv.URL, 50*time.Millisecond, zap.NewNop())
	_, err := c.Current(context.Background(), "tok", "457459")

	var ne *errs.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "status.current", ne.Op)
}

func TestClassify_UnreachableHostBecomesNetworkError(t *testing.T) {
	c := NewObatClient("http://127.0.0.1:1", 500*time.Millisecond, zap.NewNop())
	_, err := c.List(context.Background(), "tok", "", 20, 1)

	var ne *errs.NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestClassify_401BecomesAuthError(t *testing.T) {
	srv := respondWith(t, http.StatusUnauthorized, map[string]string{"message": "token kedaluwarsa"})

	c := NewPemeriksaanClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.Get(context.Background(), "tok", "457459")

	require.True(t, errs.IsAuth(err))
	assert.Contains(t, err.Error(), "token kedaluwarsa")
}

func TestClassify_403BecomesAuthError(t *testing.T) {
	srv := respondWith(t, http.StatusForbidden, map[string]string{})

	c := NewPemeriksaanClient(srv.URL, time.Second, zap.NewNop())
	err := c.UpdateDiagnosa(context.Background(), "tok", "457459", "ISPA", "istirahat")
	assert.True(t, errs.IsAuth(err))
}

func TestClassify_404BecomesNotFound(t *testing.T) {
	srv := respondWith(t, http.StatusNotFound, map[string]string{"message": "tidak ditemukan"})

	c := NewPemeriksaanClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.Get(context.Background(), "tok", "457459")

	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "457459", nf.Ref)
}

// Message dari payload remote diteruskan verbatim, tidak diparafrase.
func TestClassify_ServerErrorKeepsRemoteMessage(t *testing.T) {
	srv := respondWith(t, http.StatusInternalServerError,
		map[string]string{"message": "database sedang maintenance"})

	c := NewResepClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.CreateHeader(context.Background(), "tok", "457459")

	var se *errs.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, se.Message, "database sedang maintenance")
}

func TestClassify_ServerErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	t.Cleanup(srv.Close)

	c := NewResepClient(srv.URL, time.Second, zap.NewNop())
	err := c.Delete(context.Background(), "tok", "RSP001")

	var se *errs.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestCreateHeader_AcceptsNumericResepID(t *testing.T) {
	srv := respondWith(t, http.StatusCreated, map[string]interface{}{"id_resep": 41})

	c := NewResepClient(srv.URL, time.Second, zap.NewNop())
	id, err := c.CreateHeader(context.Background(), "tok", "457459")
	require.NoError(t, err)
	assert.Equal(t, "41", id)
}

// Find mengirim filter no_registrasi ke endpoint daftar supaya kunjungan
// tetap ketemu meski daftar penuh dipaginasi oleh layanan remote.
func TestFind_SendsRegistrationFilter(t *testing.T) {
	var gotFilter string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("no_registrasi")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"OK","data":[{"no_registrasi":"457459","rm":"RM-001","status":"menunggu"}]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewPendaftaranClient(srv.URL, time.Second, zap.NewNop())
	dto, err := c.Find(context.Background(), "tok", "457459")
	require.NoError(t, err)
	assert.Equal(t, "457459", gotFilter)
	assert.Equal(t, "RM-001", dto.RM)
}

func TestFind_NotFoundWhenAbsent(t *testing.T) {
	srv := respondWith(t, http.StatusOK, map[string]interface{}{
		"message": "OK",
		"data":    []interface{}{},
	})

	c := NewPendaftaranClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.Find(context.Background(), "tok", "999999")

	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "999999", nf.Ref)
}

func TestRequestCarriesAuthAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"OK","data":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := NewPendaftaranClient(srv.URL, time.Second, zap.NewNop())
	_, err := c.ListKunjungan(context.Background(), "token-abc", "2025-06-02", 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-abc", gotAuth)
	assert.NotEmpty(t, gotReqID)
}
