package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authservices "github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/models"
	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/services"
)

// InputPemeriksaanRequest merepresentasikan body form intake perawat.
type InputPemeriksaanRequest struct {
	NoRegistrasi string  `json:"no_registrasi"`
	Suhu         float64 `json:"suhu"`
	Tensi        string  `json:"tensi"`
	TinggiBadan  float64 `json:"tinggi_badan"`
	BeratBadan   float64 `json:"berat_badan"`
	Keluhan      string  `json:"keluhan"`
}

type DiagnosaRequest struct {
	Diagnosa string `json:"diagnosa"`
	Tindakan string `json:"tindakan"`
}

type PemeriksaanController struct {
	Service  *services.VisitService
	Sessions authservices.SessionStore
}

func NewPemeriksaanController(service *services.VisitService, sessions authservices.SessionStore) *PemeriksaanController {
	return &PemeriksaanController{Service: service, Sessions: sessions}
}

func (pc *PemeriksaanController) InputPemeriksaan(c echo.Context) error {
	ident, errResp := identityOr401(c, pc.Sessions)
	if ident == nil {
		return errResp
	}

	var req InputPemeriksaanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	vitals := models.Vitals{
		Suhu:        req.Suhu,
		Tensi:       req.Tensi,
		TinggiBadan: req.TinggiBadan,
		BeratBadan:  req.BeratBadan,
	}
	pemeriksaan, err := pc.Service.RecordVitals(
		c.Request().Context(), ident.Token, ident.IDKaryawan,
		req.NoRegistrasi, vitals, req.Keluhan,
	)
	if err != nil {
		return writeError(c, pc.Sessions, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":  http.StatusCreated,
		"message": "Pemeriksaan berhasil disimpan",
		"data":    pemeriksaan,
	})
}

func (pc *PemeriksaanController) GetPemeriksaan(c echo.Context) error {
	ident, errResp := identityOr401(c, pc.Sessions)
	if ident == nil {
		return errResp
	}

	noReg := c.Param("no_registrasi")
	pemeriksaan, err := pc.Service.GetPemeriksaan(c.Request().Context(), ident.Token, noReg)
	if err != nil {
		return writeError(c, pc.Sessions, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "OK",
		"data":    pemeriksaan,
	})
}

func (pc *PemeriksaanController) UpdateDiagnosa(c echo.Context) error {
	ident, errResp := identityOr401(c, pc.Sessions)
	if ident == nil {
		return errResp
	}

	var req DiagnosaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  http.StatusBadRequest,
			"message": "Invalid request payload: " + err.Error(),
			"data":    nil,
		})
	}

	noReg := c.Param("no_registrasi")
	if err := pc.Service.RecordDiagnosis(c.Request().Context(), ident.Token, noReg, req.Diagnosa, req.Tindakan); err != nil {
		return writeError(c, pc.Sessions, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  http.StatusOK,
		"message": "Diagnosa berhasil disimpan",
		"data":    nil,
	})
}
