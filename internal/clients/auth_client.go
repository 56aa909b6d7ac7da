package clients

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// AuthClient memanggil identity service remote untuk login/logout.
type AuthClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewAuthClient(baseURL string, timeout time.Duration, logger *zap.Logger) *AuthClient {
	return &AuthClient{http: newRESTClient(baseURL, timeout), logger: logger}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IDPoli   int    `json:"id_poli"`
}

// LoginDTO adalah payload data hasil login. Role dibiarkan mentah karena
// layanan lama mengirim kadang teks kadang kode angka; kanonikalisasi
// dilakukan di boundary ParseRole.
type LoginDTO struct {
	IDKaryawan string      `json:"id_karyawan"`
	Nama       string      `json:"nama"`
	Username   string      `json:"username"`
	Role       interface{} `json:"role"`
	IDPoli     int         `json:"id_poli"`
	Token      string      `json:"token"`
}

func (c *AuthClient) Login(ctx context.Context, credentials LoginRequest) (*LoginDTO, error) {
	resp, err := req(ctx, c.http, "").
		SetBody(credentials).
		Post("/api/login")
	if cerr := classify("auth.login", "akun", credentials.Username, resp, err); cerr != nil {
		logCall(c.logger, "auth.login", cerr)
		return nil, cerr
	}

	var env remoteEnvelope
	if uerr := json.Unmarshal(resp.Body(), &env); uerr != nil {
		return nil, uerr
	}
	var dto LoginDTO
	if uerr := json.Unmarshal(env.Data, &dto); uerr != nil {
		return nil, uerr
	}
	logCall(c.logger, "auth.login", nil)
	return &dto, nil
}

func (c *AuthClient) Logout(ctx context.Context, token string) error {
	resp, err := req(ctx, c.http, token).Post("/api/logout")
	cerr := classify("auth.logout", "session", "", resp, err)
	logCall(c.logger, "auth.logout", cerr)
	return cerr
}
