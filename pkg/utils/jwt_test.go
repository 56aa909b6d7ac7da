package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-tes")

	token, err := GenerateJWTToken("K-3", "dr. Budi", "dokter", 1, "budi", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "K-3", claims.IDKaryawan)
	assert.Equal(t, "dokter", claims.Role)
	assert.Equal(t, 1, claims.IDPoli)
	assert.Equal(t, "budi", claims.Username)
}

func TestJWTExpiredRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-tes")

	token, err := GenerateJWTToken("K-3", "dr. Budi", "dokter", 1, "budi", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ValidateJWTToken(token)
	assert.Error(t, err)
}

func TestJWTTamperedRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia-tes")

	token, err := GenerateJWTToken("K-3", "dr. Budi", "dokter", 1, "budi", time.Now().Add(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = ValidateJWTToken(tampered)
	assert.Error(t, err)
}

func TestJWTMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWTToken("K-3", "dr. Budi", "dokter", 1, "budi", time.Now().Add(time.Hour))
	assert.Error(t, err)
}
