package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	authservices "github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/services"
)

type KunjunganController struct {
	Service  *services.VisitService
	Sessions authservices.SessionStore
}

func NewKunjunganController(service *services.VisitService, sessions authservices.SessionStore) *KunjunganController {
	return &KunjunganController{Service: service, Sessions: sessions}
}

// List menampilkan daftar kunjungan untuk layar antrian. Poli default diambil
// dari identitas yang login; filter role/poli adalah konfigurasi, bukan cabang
// kode yang diduplikasi per layar.
func (kc *KunjunganController) List(c echo.Context) error {
	ident, errResp := identityOr401(c, kc.Sessions)
	if ident == nil {
		return errResp
	}

	idPoli := ident.IDPoli
	if raw := c.QueryParam("id_poli"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			idPoli = n
		}
	}
	list, err := kc.Service.ListKunjungan(c.Request().Context(), ident.Token, c.QueryParam("tanggal"), idPoli)
	if err != nil {
		return writeError(c, kc.Sessions, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    list,
	})
}

func (kc *KunjunganController) StatusCurrent(c echo.Context) error {
	ident, errResp := identityOr401(c, kc.Sessions)
	if ident == nil {
		return errResp
	}

	noReg := c.Param("no_registrasi")
	st, err := kc.Service.CurrentStatus(c.Request().Context(), ident.Token, noReg)
	if err != nil {
		return writeError(c, kc.Sessions, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data": map[string]interface{}{
			"no_registrasi": noReg,
			"status":        st.String(),
		},
	})
}

func (kc *KunjunganController) StatusHistory(c echo.Context) error {
	ident, errResp := identityOr401(c, kc.Sessions)
	if ident == nil {
		return errResp
	}

	noReg := c.Param("no_registrasi")
	entries, err := kc.Service.History(c.Request().Context(), ident.Token, noReg)
	if err != nil {
		return writeError(c, kc.Sessions, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    entries,
	})
}
