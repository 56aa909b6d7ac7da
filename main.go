package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/config"
	authServices "github.com/c14220110/pemeriksaan-gateway/internal/auth/services"
	"github.com/c14220110/pemeriksaan-gateway/internal/clients"
	"github.com/c14220110/pemeriksaan-gateway/internal/routes"
	workflowServices "github.com/c14220110/pemeriksaan-gateway/internal/workflow/services"
	"github.com/c14220110/pemeriksaan-gateway/pkg/storage/redisdb"
	"github.com/c14220110/pemeriksaan-gateway/ws"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if cfg.AppEnv == "development" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Gagal inisialisasi logger: %v", err)
	}
	defer logger.Sync()

	// Klien layanan remote
	authClient := clients.NewAuthClient(cfg.AuthBaseURL, cfg.ClientTimeout, logger)
	pendaftaranClient := clients.NewPendaftaranClient(cfg.PendaftaranBaseURL, cfg.ClientTimeout, logger)
	pemeriksaanClient := clients.NewPemeriksaanClient(cfg.PemeriksaanBaseURL, cfg.ClientTimeout, logger)
	resepClient := clients.NewResepClient(cfg.PemeriksaanBaseURL, cfg.ClientTimeout, logger)
	statusClient := clients.NewStatusClient(cfg.PemeriksaanBaseURL, cfg.ClientTimeout, logger)
	obatClient := clients.NewObatClient(cfg.ObatBaseURL, cfg.ClientTimeout, logger)

	// Session + draft store: Redis bila dikonfigurasi (multi instance),
	// file + memori untuk satu workstation.
	var sessions authServices.SessionStore
	var drafts workflowServices.DraftStore
	if cfg.RedisAddr != "" {
		rdb, rerr := redisdb.Connect()
		if rerr != nil {
			logger.Fatal("Gagal terhubung ke Redis", zap.Error(rerr))
		}
		sessions = authServices.NewRedisSessionStore(rdb, "")
		drafts = workflowServices.NewRedisDraftStore(rdb, "")
		logger.Info("Session dan draft resep disimpan di Redis", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = authServices.NewFileSessionStore(cfg.SessionFile)
		drafts = workflowServices.NewMemoryDraftStore()
		logger.Info("Session disimpan di file", zap.String("path", cfg.SessionFile))
	}

	hub := ws.NewHub(logger, cfg.WSAllowedOrigins...)
	go hub.Run()

	gate := authServices.NewRoleGate(sessions)
	authService := authServices.NewAuthService(authClient, sessions, drafts, logger)
	visitService := &workflowServices.VisitService{
		Pendaftaran: pendaftaranClient,
		Pemeriksaan: pemeriksaanClient,
		Resep:       resepClient,
		Obat:        obatClient,
		StatusSvc:   statusClient,
		Drafts:      drafts,
		Hub:         hub,
		Logger:      logger,
	}

	e := echo.New()
	e.HideBanner = true
	routes.Init(e, authService, sessions, gate, visitService, hub)

	logger.Info("Gateway berjalan", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		logger.Fatal("Server berhenti", zap.Error(err))
	}
}
