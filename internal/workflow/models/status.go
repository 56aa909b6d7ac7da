package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

// Status adalah progresi kanonik satu kunjungan. Layanan lama mengkodekan
// status sebagai angka atau teks dengan kosakata berbeda antar layar; semua
// varian masuk lewat ParseStatus.
type Status int

const (
	StatusUnknown Status = iota
	StatusRegistered
	StatusWaiting
	StatusExaminedByNurse
	StatusDiagnosed
	StatusPrescribed
	StatusClosed
)

// Kosakata kawat warisan. "terdaftar" tidak punya kode angka; kode 0–4
// dipakai layanan pendaftaran lama.
var statusWire = map[Status]string{
	StatusRegistered:      "terdaftar",
	StatusWaiting:         "menunggu",
	StatusExaminedByNurse: "diperiksa",
	StatusDiagnosed:       "selesai diperiksa",
	StatusPrescribed:      "selesai pembayaran",
	StatusClosed:          "selesai",
}

var statusByCode = map[int]Status{
	0: StatusWaiting,
	1: StatusExaminedByNurse,
	2: StatusDiagnosed,
	3: StatusPrescribed,
	4: StatusClosed,
}

func (s Status) String() string {
	if w, ok := statusWire[s]; ok {
		return w
	}
	return "unknown"
}

// LegacyCode mengembalikan kode angka warisan bila status punya padanannya.
func (s Status) LegacyCode() (int, bool) {
	for code, st := range statusByCode {
		if st == s {
			return code, true
		}
	}
	return 0, false
}

// ParseStatus mengkanonikalisasi status dari bentuk kawat apa pun: kode angka
// (termasuk float64 hasil decode JSON dan string angka) atau teks warisan
// dalam casing apa pun.
func ParseStatus(v interface{}) (Status, error) {
	switch val := v.(type) {
	case Status:
		if _, ok := statusWire[val]; ok {
			return val, nil
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		for st, w := range statusWire {
			if s == w {
				return st, nil
			}
		}
		if n, err := strconv.Atoi(s); err == nil {
			if st, ok := statusByCode[n]; ok {
				return st, nil
			}
		}
	case int:
		if st, ok := statusByCode[val]; ok {
			return st, nil
		}
	case int64:
		if st, ok := statusByCode[int(val)]; ok {
			return st, nil
		}
	case float64:
		if st, ok := statusByCode[int(val)]; ok {
			return st, nil
		}
	case json.Number:
		if n, err := val.Int64(); err == nil {
			if st, ok := statusByCode[int(n)]; ok {
				return st, nil
			}
		}
	}
	return StatusUnknown, errs.Validation("status", fmt.Sprintf("status tidak dikenali: %v", v))
}

// CanAdvance melaporkan apakah transisi maju from→to sah. Progresi linier:
// setiap tahap dinaikkan tepat satu langkah, tidak ada lompatan.
func CanAdvance(from, to Status) bool {
	if from == StatusUnknown || to == StatusUnknown {
		return false
	}
	return to == from+1
}

// CanRevert melaporkan apakah transisi mundur from→to sah. Satu-satunya jalur
// mundur adalah pembatalan resep: kembali dari tahap resep ke terdiagnosa.
func CanRevert(from, to Status) bool {
	return from == StatusPrescribed && to == StatusDiagnosed
}

// Kunjungan adalah satu kedatangan pasien, diidentifikasi nomor registrasi.
type Kunjungan struct {
	NoRegistrasi string `json:"no_registrasi"`
	RM           string `json:"rm"`
	NamaPasien   string `json:"nama_pasien"`
	IDPoli       int    `json:"id_poli"`
	Tanggal      string `json:"tanggal"`
	Status       Status `json:"status"`
}

// StatusEntry adalah satu baris riwayat status untuk layar history.
type StatusEntry struct {
	Status     Status `json:"status"`
	Keterangan string `json:"keterangan,omitempty"`
	Tanggal    string `json:"tanggal,omitempty"`
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
