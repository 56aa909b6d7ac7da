package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus_LegacyVocabulary(t *testing.T) {
	cases := []struct {
		input interface{}
		want  Status
	}{
		{0, StatusWaiting},
		{float64(0), StatusWaiting},
		{"0", StatusWaiting},
		{"menunggu", StatusWaiting},
		{"Menunggu", StatusWaiting},
		{1, StatusExaminedByNurse},
		{"diperiksa", StatusExaminedByNurse},
		{2, StatusDiagnosed},
		{"selesai diperiksa", StatusDiagnosed},
		{"Selesai Diperiksa", StatusDiagnosed},
		{3, StatusPrescribed},
		{"selesai pembayaran", StatusPrescribed},
		{4, StatusClosed},
		{"selesai", StatusClosed},
		{"terdaftar", StatusRegistered},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.input)
		require.NoError(t, err, "input %v", tc.input)
		assert.Equal(t, tc.want, got, "input %v", tc.input)
	}
}

func TestParseStatus_Unrecognized(t *testing.T) {
	for _, input := range []interface{}{"batal", 9, float64(-3), "", nil} {
		got, err := ParseStatus(input)
		require.Error(t, err, "input %v", input)
		assert.Equal(t, StatusUnknown, got)
	}
}

func TestCanAdvance_LinearProgression(t *testing.T) {
	order := []Status{
		StatusRegistered, StatusWaiting, StatusExaminedByNurse,
		StatusDiagnosed, StatusPrescribed, StatusClosed,
	}
	for i := 0; i < len(order)-1; i++ {
		assert.True(t, CanAdvance(order[i], order[i+1]),
			"%s -> %s harus sah", order[i], order[i+1])
	}

	assert.False(t, CanAdvance(StatusWaiting, StatusDiagnosed), "tidak boleh melompati tahap")
	assert.False(t, CanAdvance(StatusDiagnosed, StatusWaiting), "tidak boleh mundur lewat advance")
	assert.False(t, CanAdvance(StatusClosed, StatusClosed))
	assert.False(t, CanAdvance(StatusUnknown, StatusWaiting))
}

func TestCanRevert_OnlyPrescriptionCancel(t *testing.T) {
	assert.True(t, CanRevert(StatusPrescribed, StatusDiagnosed))
	assert.False(t, CanRevert(StatusClosed, StatusDiagnosed))
	assert.False(t, CanRevert(StatusDiagnosed, StatusExaminedByNurse))
}

func TestStatus_JSON(t *testing.T) {
	b, err := json.Marshal(Kunjungan{NoRegistrasi: "457459", Status: StatusWaiting})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"menunggu"`)

	var k Kunjungan
	require.NoError(t, json.Unmarshal([]byte(`{"no_registrasi":"457459","status":2}`), &k))
	assert.Equal(t, StatusDiagnosed, k.Status)
}

func TestStatus_LegacyCode(t *testing.T) {
	code, ok := StatusClosed.LegacyCode()
	require.True(t, ok)
	assert.Equal(t, 4, code)

	_, ok = StatusRegistered.LegacyCode()
	assert.False(t, ok, "terdaftar tidak punya kode warisan")
}
