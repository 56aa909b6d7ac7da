package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/pemeriksaan-gateway/pkg/errs"
)

func TestParseRole_Canonicalization(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  Role
	}{
		{"teks kapital", "DOKTER", RoleDokter},
		{"teks kecil", "dokter", RoleDokter},
		{"teks campur dengan spasi", "  Dokter ", RoleDokter},
		{"kode angka int", 3, RoleDokter},
		{"kode angka float64 hasil decode JSON", float64(3), RoleDokter},
		{"kode angka string", "3", RoleDokter},
		{"perawat teks", "PERAWAT", RolePerawat},
		{"perawat kode", 4, RolePerawat},
		{"alias suster", "suster", RolePerawat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRole(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRole_Unrecognized(t *testing.T) {
	for _, input := range []interface{}{"admin", 99, float64(-1), "", nil, true} {
		got, err := ParseRole(input)
		require.Error(t, err, "input %v", input)
		assert.Equal(t, RoleUnknown, got)

		ve := errs.AsValidation(err)
		require.NotNil(t, ve, "error harus ValidationError, bukan default diam-diam")
		assert.True(t, ve.HasField("role"))
	}
}

func TestRole_JSONRoundTrip(t *testing.T) {
	id := Identity{
		IDKaryawan: "K-001",
		Nama:       "dr. Sari",
		Role:       RoleDokter,
		IDPoli:     2,
		Token:      "tok-1",
	}
	b, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"role":"dokter"`)

	var decoded Identity
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, id, decoded)
}

func TestRole_UnmarshalLegacyCode(t *testing.T) {
	var id Identity
	require.NoError(t, json.Unmarshal([]byte(`{"id_karyawan":"K-2","role":4,"token":"t"}`), &id))
	assert.Equal(t, RolePerawat, id.Role)
}

func TestRole_HomePath(t *testing.T) {
	assert.Equal(t, "/dokter/dashboard", RoleDokter.HomePath())
	assert.Equal(t, "/perawat/dashboard", RolePerawat.HomePath())
	assert.Equal(t, "/", RoleUnknown.HomePath())
}
