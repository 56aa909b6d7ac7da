package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/internal/auth/models"
	"github.com/c14220110/pemeriksaan-gateway/internal/clients"
	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
	"github.com/c14220110/pemeriksaan-gateway/pkg/utils"
)

// Masa berlaku token gateway bila identity service tidak memberi exp sendiri.
const defaultTokenTTL = 8 * time.Hour

// DraftPurger menghapus seluruh record idempotensi resep. Logout eksplisit
// memutus workflow yang sedang berjalan; draft yang tertinggal akan membuat
// login berikutnya memakai id_resep basi.
type DraftPurger interface {
	Purge() error
}

type AuthService struct {
	Auth     *clients.AuthClient
	Sessions SessionStore
	Drafts   DraftPurger
	Logger   *zap.Logger
}

func NewAuthService(auth *clients.AuthClient, sessions SessionStore, drafts DraftPurger, logger *zap.Logger) *AuthService {
	return &AuthService{Auth: auth, Sessions: sessions, Drafts: drafts, Logger: logger}
}

// LoginResult membawa identitas yang sudah dikanonikalisasi plus token gateway
// yang dipakai UI untuk panggilan berikutnya.
type LoginResult struct {
	Identity     models.Identity
	GatewayToken string
}

// Login memverifikasi kredensial lewat identity service remote, menyimpan
// identitas ke session store (menimpa identitas sebelumnya), dan menerbitkan
// token gateway. Validasi input tidak pernah menyentuh jaringan.
func (s *AuthService) Login(ctx context.Context, username, password string, idPoli int) (*LoginResult, error) {
	verr := &errs.ValidationError{}
	if strings.TrimSpace(username) == "" {
		verr.Add("username", "username wajib diisi")
	}
	if password == "" {
		verr.Add("password", "password wajib diisi")
	}
	if !verr.Empty() {
		return nil, verr
	}

	dto, err := s.Auth.Login(ctx, clients.LoginRequest{Username: username, Password: password, IDPoli: idPoli})
	if err != nil {
		return nil, err
	}

	role, err := models.ParseRole(dto.Role)
	if err != nil {
		// Identity service mengirim role yang tidak dikenali; jangan simpan
		// session setengah jadi.
		s.Logger.Warn("role dari identity service tidak dikenali",
			zap.Any("role", dto.Role), zap.String("username", username))
		return nil, err
	}

	poli := dto.IDPoli
	if poli == 0 {
		poli = idPoli
	}
	identity := models.Identity{
		IDKaryawan: dto.IDKaryawan,
		Nama:       dto.Nama,
		Username:   firstNonEmpty(dto.Username, username),
		Role:       role,
		IDPoli:     poli,
		Token:      dto.Token,
	}
	if err := s.Sessions.Save(identity); err != nil {
		return nil, err
	}

	gatewayToken, err := utils.GenerateJWTToken(
		identity.IDKaryawan, identity.Nama, identity.Role.String(),
		identity.IDPoli, identity.Username, time.Now().Add(defaultTokenTTL),
	)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("login berhasil",
		zap.String("id_karyawan", identity.IDKaryawan),
		zap.String("role", identity.Role.String()),
		zap.Int("id_poli", identity.IDPoli))
	return &LoginResult{Identity: identity, GatewayToken: gatewayToken}, nil
}

// Logout memanggil logout remote secara best-effort dan selalu membersihkan
// session store beserta seluruh draft resep, apa pun hasil panggilan remote-nya.
// Draft dibersihkan hanya di sini; token kedaluwarsa di tengah workflow
// membiarkan draft supaya login ulang melanjutkan dari tempat terakhir.
func (s *AuthService) Logout(ctx context.Context) error {
	id := s.Sessions.Current()
	if id != nil {
		if err := s.Auth.Logout(ctx, id.Token); err != nil {
			s.Logger.Warn("logout remote gagal, session lokal tetap dibersihkan", zap.Error(err))
		}
	}
	var purgeErr error
	if s.Drafts != nil {
		purgeErr = s.Drafts.Purge()
	}
	if err := s.Sessions.Clear(); err != nil {
		return err
	}
	return purgeErr
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
