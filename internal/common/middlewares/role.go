package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/pemeriksaan-gateway/internal/auth/models"
	"github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
)

// RequireRole menjaga masuknya request ke area yang dibatasi role. Gate
// dijalankan ulang pada setiap request (membaca ulang session store), jadi
// logout dari tab lain langsung menutup akses.
func RequireRole(gate *services.RoleGate, required ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch gate.Authorize(required...) {
			case models.DecisionAllow:
				return next(c)
			case models.DecisionRedirectToLogin:
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Silakan login terlebih dahulu",
					"data":    map[string]interface{}{"redirect": "/login"},
				})
			default:
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"status":  http.StatusForbidden,
					"message": "Anda tidak memiliki hak akses",
					"data":    map[string]interface{}{"redirect": "/"},
				})
			}
		}
	}
}
