package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldError menyimpan satu pelanggaran validasi pada satu field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError mengumpulkan seluruh pelanggaran validasi sekaligus,
// bukan hanya yang pertama, supaya caller bisa menampilkan semuanya.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validasi gagal: " + strings.Join(parts, "; ")
}

// Add menambahkan satu pelanggaran field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// HasField melaporkan apakah field tertentu termasuk yang dilanggar.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Empty true jika tidak ada pelanggaran yang terkumpul.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// Validation membuat ValidationError dengan satu field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// AuthError: token hilang, tidak valid, atau kedaluwarsa.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "autentikasi gagal"
	}
	return e.Message
}

// NotFoundError: resource yang dirujuk tidak ada di layanan remote.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s dengan referensi %s tidak ditemukan", e.Resource, e.Ref)
}

// NetworkError: timeout atau gangguan konektivitas saat memanggil layanan remote.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("gangguan jaringan pada %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError: respon non-2xx dari layanan remote. Message diambil verbatim
// dari payload bila ada, fallback ke teks generik bila tidak.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("layanan remote mengembalikan status %d", e.StatusCode)
	}
	return e.Message
}

// IsAuth melaporkan apakah err adalah AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// AsValidation mengekstrak ValidationError dari err, nil jika bukan.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// HTTPStatus memetakan taksonomi error ke kode status HTTP untuk envelope respon.
func HTTPStatus(err error) int {
	var (
		ve *ValidationError
		ae *AuthError
		nf *NotFoundError
		ne *NetworkError
		se *ServerError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ae):
		return http.StatusUnauthorized
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ne):
		return http.StatusBadGateway
	case errors.As(err, &se):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
