package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmodels "github.com/c14220110/pemeriksaan-gateway/internal/auth/models"
	authservices "github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

// identityOr401 mengambil identitas dari session store; satu jalur baca untuk
// semua controller workflow.
func identityOr401(c echo.Context, sessions authservices.SessionStore) (*authmodels.Identity, error) {
	id := sessions.Current()
	if id == nil {
		return nil, c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"status":  http.StatusUnauthorized,
			"message": "Belum login",
			"data":    map[string]interface{}{"redirect": "/login"},
		})
	}
	return id, nil
}

// writeError menerjemahkan taksonomi error ke envelope respon. AuthError dari
// layanan upstream berarti token remote sudah tidak valid: session lokal
// dibersihkan dan UI diarahkan ke login. Draft resep TIDAK dibersihkan di sini;
// login ulang melanjutkan workflow dari tempat terakhir.
func writeError(c echo.Context, sessions authservices.SessionStore, err error) error {
	if errs.IsAuth(err) {
		_ = sessions.Clear()
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"status":  http.StatusUnauthorized,
			"message": err.Error(),
			"data":    map[string]interface{}{"redirect": "/login"},
		})
	}
	if ve := errs.AsValidation(err); ve != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": ve.Error(),
			"data":    map[string]interface{}{"fields": ve.Fields},
		})
	}
	status := errs.HTTPStatus(err)
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": err.Error(),
		"data":    nil,
	})
}
