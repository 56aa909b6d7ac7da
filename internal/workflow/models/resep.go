package models

import (
	"strings"

	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

// ResepDraft adalah record idempotensi per nomor registrasi: header resep yang
// sudah dibuat di layanan remote plus jumlah detail yang sudah dilampirkan.
// Keberadaan draft mencegah pembuatan header ganda saat invokasi berulang.
type ResepDraft struct {
	IDResep string `json:"id_resep"`
	Lines   int    `json:"lines"`
}

// DetailResep adalah satu baris obat dalam resep.
type DetailResep struct {
	IDObat      int    `json:"id_obat"`
	Jumlah      int    `json:"jumlah"`
	AturanPakai string `json:"aturan_pakai"`
}

// ValidateDetailResep memeriksa ketiga field wajib sekaligus.
func ValidateDetailResep(d DetailResep) error {
	verr := &errs.ValidationError{}
	if d.IDObat <= 0 {
		verr.Add("id_obat", "obat wajib dipilih")
	}
	if d.Jumlah <= 0 {
		verr.Add("jumlah", "jumlah wajib diisi")
	}
	if strings.TrimSpace(d.AturanPakai) == "" {
		verr.Add("aturan_pakai", "aturan pakai wajib diisi")
	}
	if verr.Empty() {
		return nil
	}
	return verr
}
