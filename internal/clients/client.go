// Package clients berisi klien resty untuk layanan remote yang menjadi
// kolaborator gateway: pendaftaran, pemeriksaan (termasuk e-resep dan status),
// katalog obat, dan identity service. Tidak ada retry otomatis: kegagalan
// langsung dikembalikan ke pemanggil (§ penanganan error gateway).
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

func newRESTClient(baseURL string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
}

// req menyiapkan satu request: context untuk pembatalan, bearer token bila ada,
// dan request id untuk korelasi log lintas layanan.
func req(ctx context.Context, c *resty.Client, token string) *resty.Request {
	r := c.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// remoteEnvelope adalah bentuk umum respon layanan remote: {status, message, data}.
type remoteEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// classify memetakan hasil satu panggilan remote ke taksonomi error gateway.
// err transport (termasuk timeout) → NetworkError; 401/403 → AuthError;
// 404 → NotFoundError; non-2xx lain → ServerError dengan message payload
// verbatim bila ada.
func classify(op, resource, ref string, resp *resty.Response, err error) error {
	if err != nil {
		return &errs.NetworkError{Op: op, Err: err}
	}
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}
	msg := payloadMessage(resp.Body())
	switch {
	case code == 401 || code == 403:
		if msg == "" {
			msg = "token tidak valid atau kedaluwarsa"
		}
		return &errs.AuthError{Message: msg}
	case code == 404:
		return &errs.NotFoundError{Resource: resource, Ref: ref}
	default:
		return &errs.ServerError{StatusCode: code, Message: msg}
	}
}

func payloadMessage(body []byte) string {
	var env remoteEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return env.Message
}

func logCall(logger *zap.Logger, op string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn("panggilan layanan remote gagal", zap.String("op", op), zap.Error(err))
		return
	}
	logger.Debug("panggilan layanan remote sukses", zap.String("op", op))
}

func pathf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
