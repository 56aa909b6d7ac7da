package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ResepClient memanggil layanan e-resep: header dibuat dulu, lalu detail
// dilampirkan satu per satu; header bisa dihapus sebelum difinalkan.
type ResepClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewResepClient(baseURL string, timeout time.Duration, logger *zap.Logger) *ResepClient {
	return &ResepClient{http: newRESTClient(baseURL, timeout), logger: logger}
}

type DetailResepDTO struct {
	IDObat      int    `json:"id_obat"`
	Jumlah      int    `json:"jumlah"`
	AturanPakai string `json:"aturan_pakai"`
}

// CreateHeader membuat header resep baru untuk satu nomor registrasi dan
// mengembalikan id_resep. Idempotensi per registrasi bukan urusan klien ini;
// itu ditangani draft store di orchestrator.
func (c *ResepClient) CreateHeader(ctx context.Context, token, noRegistrasi string) (string, error) {
	resp, err := req(ctx, c.http, token).
		SetBody(map[string]string{"no_registrasi": noRegistrasi}).
		Post("/api/e-resep")
	if cerr := classify("resep.create_header", "resep", noRegistrasi, resp, err); cerr != nil {
		logCall(c.logger, "resep.create_header", cerr)
		return "", cerr
	}

	var out struct {
		IDResep interface{} `json:"id_resep"`
	}
	if uerr := json.Unmarshal(resp.Body(), &out); uerr != nil {
		return "", uerr
	}
	id := stringifyID(out.IDResep)
	if id == "" {
		return "", fmt.Errorf("layanan e-resep tidak mengembalikan id_resep")
	}
	logCall(c.logger, "resep.create_header", nil)
	return id, nil
}

func (c *ResepClient) AddDetail(ctx context.Context, token, idResep string, detail DetailResepDTO) error {
	resp, err := req(ctx, c.http, token).
		SetBody(detail).
		Post(pathf("/api/e-resep/%s/detail", idResep))
	cerr := classify("resep.add_detail", "resep", idResep, resp, err)
	logCall(c.logger, "resep.add_detail", cerr)
	return cerr
}

func (c *ResepClient) Delete(ctx context.Context, token, idResep string) error {
	resp, err := req(ctx, c.http, token).
		Delete(pathf("/api/e-resep/%s", idResep))
	cerr := classify("resep.delete", "resep", idResep, resp, err)
	logCall(c.logger, "resep.delete", cerr)
	return cerr
}

// stringifyID menormalkan id yang kadang dikirim sebagai angka, kadang teks.
func stringifyID(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}
