package services

import (
	"github.com/c14220110/pemeriksaan-gateway/internal/auth/models"
)

// RoleGate memutuskan apakah identitas saat ini boleh masuk ke area
// yang dibatasi role. Pemeriksaan membaca ulang session store setiap kali
// dipanggil; keputusan allow tidak pernah di-cache melewati perubahan
// identitas (logout di tab lain langsung terlihat).
type RoleGate struct {
	Sessions SessionStore
}

func NewRoleGate(sessions SessionStore) *RoleGate {
	return &RoleGate{Sessions: sessions}
}

// Authorize mengembalikan keputusan untuk satu navigasi.
// Identitas dengan role yang tidak bisa dikanonikalisasi diperlakukan sebagai
// session korup dan diarahkan ke login, bukan ke halaman default.
func (g *RoleGate) Authorize(required ...models.Role) models.Decision {
	id := g.Sessions.Current()
	if id == nil {
		return models.DecisionRedirectToLogin
	}
	if id.Role != models.RoleDokter && id.Role != models.RolePerawat {
		return models.DecisionRedirectToLogin
	}
	if len(required) == 0 {
		return models.DecisionAllow
	}
	for _, r := range required {
		if r == id.Role {
			return models.DecisionAllow
		}
	}
	return models.DecisionRedirectToDefault
}
