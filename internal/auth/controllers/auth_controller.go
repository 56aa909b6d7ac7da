package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IDPoli   int    `json:"id_poli"`
}

type AuthController struct {
	Service  *services.AuthService
	Sessions services.SessionStore
}

func NewAuthController(service *services.AuthService, sessions services.SessionStore) *AuthController {
	return &AuthController{Service: service, Sessions: sessions}
}

func (ac *AuthController) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	result, err := ac.Service.Login(c.Request().Context(), req.Username, req.Password, req.IDPoli)
	if err != nil {
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

	id := result.Identity
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Login successful",
		"data": map[string]interface{}{
			"id_karyawan": id.IDKaryawan,
			"nama":        id.Nama,
			"username":    id.Username,
			"role":        id.Role.String(),
			"id_poli":     id.IDPoli,
			"token":       result.GatewayToken,
			"redirect":    id.Role.HomePath(),
		},
	})
}

func (ac *AuthController) Logout(c echo.Context) error {
	if err := ac.Service.Logout(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  http.StatusInternalServerError,
			"message": "Logout gagal: " + err.Error(),
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Logout successful",
		"data":    nil,
	})
}

// Me mengembalikan identitas yang sedang login, tanpa token upstream.
func (ac *AuthController) Me(c echo.Context) error {
	id := ac.Sessions.Current()
	if id == nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"status":  http.StatusUnauthorized,
			"message": "Belum login",
			"data":    nil,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data": map[string]interface{}{
			"id_karyawan": id.IDKaryawan,
			"nama":        id.Nama,
			"username":    id.Username,
			"role":        id.Role.String(),
			"id_poli":     id.IDPoli,
		},
	})
}
