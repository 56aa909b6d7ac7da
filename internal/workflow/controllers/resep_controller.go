package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	authservices "github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/models"
	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/services"
)

type CreateResepRequest struct {
	NoRegistrasi string `json:"no_registrasi"`
}

type DetailResepRequest struct {
	NoRegistrasi string `json:"no_registrasi"`
	IDObat       int    `json:"id_obat"`
	Jumlah       int    `json:"jumlah"`
	AturanPakai  string `json:"aturan_pakai"`
}

type ResepController struct {
	Service  *services.VisitService
	Sessions authservices.SessionStore
}

func NewResepController(service *services.VisitService, sessions authservices.SessionStore) *ResepController {
	return &ResepController{Service: service, Sessions: sessions}
}

// CreateResep membuat (atau mengembalikan yang sudah ada) header resep untuk
// satu registrasi. Idempoten terhadap pemanggilan ganda dari UI.
func (rc *ResepController) CreateResep(c echo.Context) error {
	ident, errResp := identityOr401(c, rc.Sessions)
	if ident == nil {
		return errResp
	}

	var req CreateResepRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	idResep, err := rc.Service.CreateResepHeader(c.Request().Context(), ident.Token, req.NoRegistrasi)
	if err != nil {
		return writeError(c, rc.Sessions, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Resep berhasil dibuat",
		"data":    map[string]interface{}{"id_resep": idResep},
	})
}

func (rc *ResepController) AddDetail(c echo.Context) error {
	ident, errResp := identityOr401(c, rc.Sessions)
	if ident == nil {
		return errResp
	}

	var req DetailResepRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	idResep := c.Param("id_resep")
	detail := models.DetailResep{
		IDObat:      req.IDObat,
		Jumlah:      req.Jumlah,
		AturanPakai: req.AturanPakai,
	}
	if err := rc.Service.AddResepDetail(c.Request().Context(), ident.Token, req.NoRegistrasi, idResep, detail); err != nil {
		return writeError(c, rc.Sessions, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Detail resep berhasil ditambahkan",
		"data":    nil,
	})
}

func (rc *ResepController) Finalize(c echo.Context) error {
	ident, errResp := identityOr401(c, rc.Sessions)
	if ident == nil {
		return errResp
	}

	var req CreateResepRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	idResep := c.Param("id_resep")
	if err := rc.Service.FinalizeResep(c.Request().Context(), ident.Token, req.NoRegistrasi, idResep); err != nil {
		return writeError(c, rc.Sessions, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Resep difinalkan, kunjungan selesai",
		"data":    nil,
	})
}

func (rc *ResepController) Cancel(c echo.Context) error {
	ident, errResp := identityOr401(c, rc.Sessions)
	if ident == nil {
		return errResp
	}

	idResep := c.Param("id_resep")
	noReg := c.QueryParam("no_registrasi")
	if err := rc.Service.CancelResep(c.Request().Context(), ident.Token, noReg, idResep); err != nil {
		return writeError(c, rc.Sessions, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Resep dibatalkan",
		"data":    nil,
	})
}

// ObatList meneruskan pencarian katalog obat untuk combobox form resep.
func (rc *ResepController) ObatList(c echo.Context) error {
	ident, errResp := identityOr401(c, rc.Sessions)
	if ident == nil {
		return errResp
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	list, err := rc.Service.ListObat(c.Request().Context(), ident.Token, c.QueryParam("q"), limit, page)
	if err != nil {
		return writeError(c, rc.Sessions, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    list,
	})
}
