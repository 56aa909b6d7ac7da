package clients

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ObatClient memanggil katalog obat untuk form resep dokter.
type ObatClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewObatClient(baseURL string, timeout time.Duration, logger *zap.Logger) *ObatClient {
	return &ObatClient{http: newRESTClient(baseURL, timeout), logger: logger}
}

type ObatDTO struct {
	IDObat   int    `json:"id_obat"`
	NamaObat string `json:"nama_obat"`
	Satuan   string `json:"satuan"`
	Jenis    string `json:"jenis"`
}

// List menampilkan daftar obat dengan pencarian nama + pagination.
// q boleh kosong; limit default 20, max 100; page dimulai dari 1.
func (c *ObatClient) List(ctx context.Context, token, q string, limit, page int) ([]ObatDTO, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}

	r := req(ctx, c.http, token).
		SetQueryParam("limit", itoa(limit)).
		SetQueryParam("page", itoa(page))
	if q != "" {
		r.SetQueryParam("q", q)
	}
	resp, err := r.Get("/api/admin/obat")
	if cerr := classify("obat.list", "obat", q, resp, err); cerr != nil {
		logCall(c.logger, "obat.list", cerr)
		return nil, cerr
	}

	var env remoteEnvelope
	if uerr := json.Unmarshal(resp.Body(), &env); uerr != nil {
		return nil, uerr
	}
	var list []ObatDTO
	if uerr := json.Unmarshal(env.Data, &list); uerr != nil {
		return nil, uerr
	}
	logCall(c.logger, "obat.list", nil)
	return list, nil
}
