package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

// Role adalah representasi kanonik peran pengguna. Sumber lama mencampur
// kode angka dan teks bebas dengan casing berbeda; semua masuk lewat ParseRole.
type Role int

const (
	RoleUnknown Role = iota
	RoleDokter
	RolePerawat
)

// Kode role warisan dari tabel Role lama.
const (
	legacyCodeDokter  = 3
	legacyCodePerawat = 4
)

func (r Role) String() string {
	switch r {
	case RoleDokter:
		return "dokter"
	case RolePerawat:
		return "perawat"
	default:
		return "unknown"
	}
}

// HomePath mengembalikan halaman default untuk role, dipakai redirect setelah login.
func (r Role) HomePath() string {
	switch r {
	case RoleDokter:
		return "/dokter/dashboard"
	case RolePerawat:
		return "/perawat/dashboard"
	default:
		return "/"
	}
}

// ParseRole adalah satu-satunya boundary kanonikalisasi role. Menerima teks
// dalam casing apa pun ("DOKTER", "dokter"), kode angka warisan (3 = dokter,
// 4 = perawat) baik sebagai int, float64 (hasil decode JSON), maupun string
// angka. Input yang tidak dikenali mengembalikan ValidationError, tidak pernah
// di-default-kan diam-diam.
func ParseRole(v interface{}) (Role, error) {
	switch val := v.(type) {
	case Role:
		if val == RoleDokter || val == RolePerawat {
			return val, nil
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(val))
		switch s {
		case "dokter":
			return RoleDokter, nil
		case "perawat", "suster":
			return RolePerawat, nil
		}
		if n, err := strconv.Atoi(s); err == nil {
			return roleFromCode(n)
		}
	case int:
		return roleFromCode(val)
	case int64:
		return roleFromCode(int(val))
	case float64:
		return roleFromCode(int(val))
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return roleFromCode(int(n))
		}
	}
	return RoleUnknown, errs.Validation("role", fmt.Sprintf("role tidak dikenali: %v", v))
}

func roleFromCode(code int) (Role, error) {
	switch code {
	case legacyCodeDokter:
		return RoleDokter, nil
	case legacyCodePerawat:
		return RolePerawat, nil
	default:
		return RoleUnknown, errs.Validation("role", fmt.Sprintf("kode role tidak dikenali: %d", code))
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity adalah identitas hasil login, sumber kebenaran tunggal milik
// session store. Token adalah token layanan remote yang dipakai untuk
// setiap panggilan upstream atas nama pengguna ini.
type Identity struct {
	IDKaryawan string `json:"id_karyawan"`
	Nama       string `json:"nama"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	IDPoli     int    `json:"id_poli"`
	Token      string `json:"token"`
}

// Decision adalah hasil pemeriksaan role gate untuk satu navigasi.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionRedirectToLogin
	DecisionRedirectToDefault
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectToLogin:
		return "redirect_to_login"
	case DecisionRedirectToDefault:
		return "redirect_to_default"
	default:
		return "unknown"
	}
}
