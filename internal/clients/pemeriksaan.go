package clients

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PemeriksaanClient memanggil layanan rekam pemeriksaan: vitals + keluhan
// dibuat perawat, diagnosa + tindakan diisi dokter pada record yang sama.
type PemeriksaanClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewPemeriksaanClient(baseURL string, timeout time.Duration, logger *zap.Logger) *PemeriksaanClient {
	return &PemeriksaanClient{http: newRESTClient(baseURL, timeout), logger: logger}
}

// PemeriksaanDTO mengikuti bentuk kawat layanan lama: suhu disimpan dikali 10
// (365 untuk 36.5°C), tensi sebagai teks "120/80".
type PemeriksaanDTO struct {
	NoRegistrasi string  `json:"no_registrasi"`
	RM           string  `json:"rm"`
	IDPerawat    string  `json:"id_perawat"`
	IDDokter     string  `json:"id_dokter,omitempty"`
	Suhu         int     `json:"suhu"`
	Tensi        string  `json:"tensi"`
	TinggiBadan  int     `json:"tinggi_badan"`
	BeratBadan   int     `json:"berat_badan"`
	Keluhan      string  `json:"keluhan"`
	Diagnosa     *string `json:"diagnosa"`
	Tindakan     *string `json:"tindakan"`
}

func (c *PemeriksaanClient) Get(ctx context.Context, token, noRegistrasi string) (*PemeriksaanDTO, error) {
	resp, err := req(ctx, c.http, token).
		Get(pathf("/api/pemeriksaan/%s", noRegistrasi))
	if cerr := classify("pemeriksaan.get", "pemeriksaan", noRegistrasi, resp, err); cerr != nil {
		logCall(c.logger, "pemeriksaan.get", cerr)
		return nil, cerr
	}

	var env remoteEnvelope
	if uerr := json.Unmarshal(resp.Body(), &env); uerr != nil {
		return nil, uerr
	}
	var dto PemeriksaanDTO
	if uerr := json.Unmarshal(env.Data, &dto); uerr != nil {
		return nil, uerr
	}
	logCall(c.logger, "pemeriksaan.get", nil)
	return &dto, nil
}

func (c *PemeriksaanClient) Create(ctx context.Context, token string, dto PemeriksaanDTO) error {
	resp, err := req(ctx, c.http, token).
		SetBody(dto).
		Post("/api/pemeriksaan")
	cerr := classify("pemeriksaan.create", "pemeriksaan", dto.NoRegistrasi, resp, err)
	logCall(c.logger, "pemeriksaan.create", cerr)
	return cerr
}

func (c *PemeriksaanClient) UpdateDiagnosa(ctx context.Context, token, noRegistrasi, diagnosa, tindakan string) error {
	resp, err := req(ctx, c.http, token).
		SetBody(map[string]string{"diagnosa": diagnosa, "tindakan": tindakan}).
		Put(pathf("/api/pemeriksaan/%s/diagnosa", noRegistrasi))
	cerr := classify("pemeriksaan.update_diagnosa", "pemeriksaan", noRegistrasi, resp, err)
	logCall(c.logger, "pemeriksaan.update_diagnosa", cerr)
	return cerr
}
