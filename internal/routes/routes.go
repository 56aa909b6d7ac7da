package routes

import (
	"github.com/labstack/echo/v4"

	authControllers "github.com/c14220110/pemeriksaan-gateway/internal/auth/controllers"
	authModels "github.com/c14220110/pemeriksaan-gateway/internal/auth/models"
	authServices "github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
	"github.com/c14220110/pemeriksaan-gateway/internal/common/middlewares"
	workflowControllers "github.com/c14220110/pemeriksaan-gateway/internal/workflow/controllers"
	workflowServices "github.com/c14220110/pemeriksaan-gateway/internal/workflow/services"
	"github.com/c14220110/pemeriksaan-gateway/ws"
)

// Init menginisialisasi semua routes menggunakan Echo framework.
// Satu implementasi per layar logis; pembatasan role dokter/perawat dipasang
// sebagai middleware, bukan cabang kode per halaman.
func Init(
	e *echo.Echo,
	authService *authServices.AuthService,
	sessions authServices.SessionStore,
	gate *authServices.RoleGate,
	visitService *workflowServices.VisitService,
	hub *ws.Hub,
) {
	authController := authControllers.NewAuthController(authService, sessions)
	pemeriksaanController := workflowControllers.NewPemeriksaanController(visitService, sessions)
	resepController := workflowControllers.NewResepController(visitService, sessions)
	kunjunganController := workflowControllers.NewKunjunganController(visitService, sessions)

	jwt := middlewares.JWTMiddleware()
	dokter := middlewares.RequireRole(gate, authModels.RoleDokter)
	perawat := middlewares.RequireRole(gate, authModels.RolePerawat)
	dokterAtauPerawat := middlewares.RequireRole(gate, authModels.RoleDokter, authModels.RolePerawat)

	api := e.Group("/api")

	// Identity
	api.POST("/login", authController.Login) // Tidak pakai JWT
	api.POST("/logout", authController.Logout, jwt)
	api.GET("/me", authController.Me, jwt)

	// Daftar kunjungan + status, dipakai layar antrian dan history kedua role
	api.GET("/kunjungan", kunjunganController.List, jwt, dokterAtauPerawat)
	api.GET("/status/:no_registrasi/current", kunjunganController.StatusCurrent, jwt, dokterAtauPerawat)
	api.GET("/status/:no_registrasi/history", kunjunganController.StatusHistory, jwt, dokterAtauPerawat)

	// Intake perawat; hasilnya bisa dibaca kedua role
	api.POST("/pemeriksaan", pemeriksaanController.InputPemeriksaan, jwt, perawat)
	api.GET("/pemeriksaan/:no_registrasi", pemeriksaanController.GetPemeriksaan, jwt, dokterAtauPerawat)

	// Tahap dokter: diagnosa lalu resep
	api.PUT("/pemeriksaan/:no_registrasi/diagnosa", pemeriksaanController.UpdateDiagnosa, jwt, dokter)
	api.GET("/obat", resepController.ObatList, jwt, dokter)
	eresep := api.Group("/e-resep", jwt, dokter)
	eresep.POST("", resepController.CreateResep)
	eresep.POST("/:id_resep/detail", resepController.AddDetail)
	eresep.POST("/:id_resep/finalize", resepController.Finalize)
	eresep.DELETE("/:id_resep", resepController.Cancel)

	// Push perubahan status ke dashboard
	e.GET("/ws", ws.ServeWS(hub))
}
