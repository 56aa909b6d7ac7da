package models

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

// Batas validasi vitals, sama dengan aturan form intake perawat.
const (
	SuhuMin   = 35.0
	SuhuMax   = 45.0
	TinggiMin = 30.0
	TinggiMax = 300.0
	BeratMin  = 1.0
	BeratMax  = 500.0

	SistolikMin  = 70
	SistolikMax  = 250
	DiastolikMin = 40
	DiastolikMax = 150

	KeluhanMinLen = 5
)

var tensiPattern = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)

// Vitals adalah hasil pengukuran intake perawat.
type Vitals struct {
	Suhu        float64 `json:"suhu"`
	Tensi       string  `json:"tensi"`
	TinggiBadan float64 `json:"tinggi_badan"`
	BeratBadan  float64 `json:"berat_badan"`
}

// ValidateVitals memeriksa seluruh field sekaligus dan mengumpulkan semua
// pelanggaran dalam satu ValidationError supaya form bisa menampilkan
// semuanya, bukan hanya yang pertama.
func ValidateVitals(v Vitals, keluhan string) error {
	verr := &errs.ValidationError{}

	if v.Suhu < SuhuMin || v.Suhu > SuhuMax {
		verr.Add("suhu", "suhu harus antara 35-45°C")
	}
	if v.TinggiBadan < TinggiMin || v.TinggiBadan > TinggiMax {
		verr.Add("tinggi_badan", "tinggi badan harus antara 30-300 cm")
	}
	if v.BeratBadan < BeratMin || v.BeratBadan > BeratMax {
		verr.Add("berat_badan", "berat badan harus antara 1-500 kg")
	}

	if !tensiPattern.MatchString(v.Tensi) {
		verr.Add("tensi", "format tensi tidak valid (contoh: 120/80)")
	} else {
		parts := strings.SplitN(v.Tensi, "/", 2)
		sistolik, _ := strconv.Atoi(parts[0])
		diastolik, _ := strconv.Atoi(parts[1])
		if sistolik < SistolikMin || sistolik > SistolikMax ||
			diastolik < DiastolikMin || diastolik > DiastolikMax {
			verr.Add("tensi", "nilai tensi tidak dalam rentang normal (70-250/40-150)")
		}
	}

	keluhan = strings.TrimSpace(keluhan)
	if keluhan == "" {
		verr.Add("keluhan", "keluhan wajib diisi")
	} else if len(keluhan) < KeluhanMinLen {
		verr.Add("keluhan", "keluhan terlalu pendek (minimal 5 karakter)")
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// Pemeriksaan adalah satu record pemeriksaan per nomor registrasi: vitals +
// keluhan diisi perawat, diagnosa + tindakan diisi dokter kemudian.
type Pemeriksaan struct {
	NoRegistrasi string `json:"no_registrasi"`
	RM           string `json:"rm"`
	Vitals       Vitals `json:"vitals"`
	Keluhan      string `json:"keluhan"`
	Diagnosa     string `json:"diagnosa,omitempty"`
	Tindakan     string `json:"tindakan,omitempty"`
}
