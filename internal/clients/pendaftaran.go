package clients

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

// PendaftaranClient memanggil layanan pendaftaran: daftar kunjungan per
// tanggal/poli dan transisi status kunjungan.
type PendaftaranClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewPendaftaranClient(baseURL string, timeout time.Duration, logger *zap.Logger) *PendaftaranClient {
	return &PendaftaranClient{http: newRESTClient(baseURL, timeout), logger: logger}
}

// KunjunganDTO adalah bentuk kawat satu kunjungan dari layanan pendaftaran.
// Status dibiarkan mentah (angka atau teks warisan); kanonikalisasi di
// boundary ParseStatus.
type KunjunganDTO struct {
	NoRegistrasi string      `json:"no_registrasi"`
	RM           string      `json:"rm"`
	NamaPasien   string      `json:"nama_pasien"`
	IDPoli       int         `json:"id_poli"`
	Tanggal      string      `json:"tanggal"`
	Status       interface{} `json:"status"`
}

// ListKunjungan mengambil daftar kunjungan, difilter tanggal dan poli bila diisi.
func (c *PendaftaranClient) ListKunjungan(ctx context.Context, token, tanggal string, idPoli int) ([]KunjunganDTO, error) {
	r := req(ctx, c.http, token)
	if tanggal != "" {
		r.SetQueryParam("tanggal", tanggal)
	}
	if idPoli > 0 {
		r.SetQueryParam("id_poli", itoa(idPoli))
	}
	resp, err := r.Get("/api/pendaftaran")
	if cerr := classify("pendaftaran.list", "kunjungan", tanggal, resp, err); cerr != nil {
		logCall(c.logger, "pendaftaran.list", cerr)
		return nil, cerr
	}

	var env remoteEnvelope
	if uerr := json.Unmarshal(resp.Body(), &env); uerr != nil {
		return nil, uerr
	}
	var list []KunjunganDTO
	if uerr := json.Unmarshal(env.Data, &list); uerr != nil {
		return nil, uerr
	}
	logCall(c.logger, "pendaftaran.list", nil)
	return list, nil
}

// Find mencari satu kunjungan berdasarkan nomor registrasi. Layanan lama tidak
// punya endpoint single-get; filter no_registrasi dikirim ke endpoint daftar
// supaya kunjungan tetap ketemu meski daftar penuh dipaginasi, lalu hasilnya
// tetap dipindai karena tidak semua versi layanan menghormati filternya.
func (c *PendaftaranClient) Find(ctx context.Context, token, noRegistrasi string) (*KunjunganDTO, error) {
	resp, err := req(ctx, c.http, token).
		SetQueryParam("no_registrasi", noRegistrasi).
		Get("/api/pendaftaran")
	if cerr := classify("pendaftaran.find", "kunjungan", noRegistrasi, resp, err); cerr != nil {
		logCall(c.logger, "pendaftaran.find", cerr)
		return nil, cerr
	}

	var env remoteEnvelope
	if uerr := json.Unmarshal(resp.Body(), &env); uerr != nil {
		return nil, uerr
	}
	var list []KunjunganDTO
	if uerr := json.Unmarshal(env.Data, &list); uerr != nil {
		return nil, uerr
	}
	logCall(c.logger, "pendaftaran.find", nil)
	for i := range list {
		if list[i].NoRegistrasi == noRegistrasi {
			return &list[i], nil
		}
	}
	return nil, &errs.NotFoundError{Resource: "kunjungan", Ref: noRegistrasi}
}

// UpdateStatus menaikkan status kunjungan di layanan pendaftaran.
func (c *PendaftaranClient) UpdateStatus(ctx context.Context, token, noRegistrasi, status string) error {
	resp, err := req(ctx, c.http, token).
		SetBody(map[string]string{"status": status}).
		Put(pathf("/api/pendaftaran/%s", noRegistrasi))
	cerr := classify("pendaftaran.update_status", "kunjungan", noRegistrasi, resp, err)
	logCall(c.logger, "pendaftaran.update_status", cerr)
	return cerr
}

func itoa(n int) string {
	return pathf("%d", n)
}
