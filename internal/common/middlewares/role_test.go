package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/pemeriksaan-gateway/internal/auth/models"
	"github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
)

func callGuarded(t *testing.T, store services.SessionStore, required ...models.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	gate := &services.RoleGate{Sessions: store}
	handler := RequireRole(gate, required...)(func(c echo.Context) error {
		return c.String(http.StatusOK, "lolos")
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireRole_NoSessionRedirectsToLogin(t *testing.T) {
	rec := callGuarded(t, services.NewMemorySessionStore(), models.RoleDokter)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/login")
}

func TestRequireRole_WrongRoleForbidden(t *testing.T) {
	store := services.NewMemorySessionStore()
	require.NoError(t, store.Save(models.Identity{
		IDKaryawan: "K-7", Nama: "Siti", Role: models.RolePerawat, Token: "tok",
	}))

	rec := callGuarded(t, store, models.RoleDokter)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Anda tidak memiliki hak akses")
}

func TestRequireRole_MatchingRolePasses(t *testing.T) {
	store := services.NewMemorySessionStore()
	require.NoError(t, store.Save(models.Identity{
		IDKaryawan: "K-3", Nama: "Budi", Role: models.RoleDokter, Token: "tok",
	}))

	rec := callGuarded(t, store, models.RoleDokter, models.RolePerawat)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "lolos", rec.Body.String())
}

// Logout di antara dua request langsung menutup akses karena gate membaca
// ulang session store setiap kali.
func TestRequireRole_RevokedAfterLogout(t *testing.T) {
	store := services.NewMemorySessionStore()
	require.NoError(t, store.Save(models.Identity{
		IDKaryawan: "K-3", Nama: "Budi", Role: models.RoleDokter, Token: "tok",
	}))

	rec := callGuarded(t, store, models.RoleDokter)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, store.Clear())
	rec = callGuarded(t, store, models.RoleDokter)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
