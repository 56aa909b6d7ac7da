package clients

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// StatusClient membaca status kunjungan dari layanan status: status terkini
// untuk gating tahap workflow, dan riwayat status untuk layar history.
type StatusClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewStatusClient(baseURL string, timeout time.Duration, logger *zap.Logger) *StatusClient {
	return &StatusClient{http: newRESTClient(baseURL, timeout), logger: logger}
}

type StatusDTO struct {
	NoRegistrasi string      `json:"no_registrasi"`
	Status       interface{} `json:"status"`
	Keterangan   string      `json:"keterangan,omitempty"`
	Tanggal      string      `json:"tanggal,omitempty"`
}

// Current mengambil status terkini satu kunjungan.
func (c *StatusClient) Current(ctx context.Context, token, noRegistrasi string) (*StatusDTO, error) {
	resp, err := req(ctx, c.http, token).
		Get(pathf("/api/status/%s/current", noRegistrasi))
	if cerr := classify("status.current", "kunjungan", noRegistrasi, resp, err); cerr != nil {
		logCall(c.logger, "status.current", cerr)
		return nil, cerr
	}

	var env remoteEnvelope
	if uerr := json.Unmarshal(resp.Body(), &env); uerr != nil {
		return nil, uerr
	}
	var dto StatusDTO
	if uerr := json.Unmarshal(env.Data, &dto); uerr != nil {
		return nil, uerr
	}
	logCall(c.logger, "status.current", nil)
	return &dto, nil
}

// History mengambil riwayat status satu kunjungan, terlama ke terbaru.
func (c *StatusClient) History(ctx context.Context, token, noRegistrasi string) ([]StatusDTO, error) {
	resp, err := req(ctx, c.http, token).
		Get(pathf("/api/status/%s/history", noRegistrasi))
	if cerr := classify("status.history", "kunjungan", noRegistrasi, resp, err); cerr != nil {
		logCall(c.logger, "status.history", cerr)
		return nil, cerr
	}

	var env remoteEnvelope
	if uerr := json.Unmarshal(resp.Body(), &env); uerr != nil {
		return nil, uerr
	}
	var list []StatusDTO
	if uerr := json.Unmarshal(env.Data, &list); uerr != nil {
		return nil, uerr
	}
	logCall(c.logger, "status.history", nil)
	return list, nil
}
