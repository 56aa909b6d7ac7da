package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/models"
)

func TestBroadcastStatusCarriesLegacyCode(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1)}
	hub.Register <- client
	hub.BroadcastStatus("457459", models.StatusClosed)

	select {
	case raw := <-client.Send:
		var update StatusUpdate
		require.NoError(t, json.Unmarshal(raw, &update))
		assert.Equal(t, "457459", update.NoRegistrasi)
		assert.Equal(t, "selesai", update.Status)
		require.NotNil(t, update.Kode)
		assert.Equal(t, 4, *update.Kode)
	case <-time.After(time.Second):
		t.Fatal("tidak ada pesan broadcast diterima")
	}
}

// "terdaftar" tidak punya kode angka warisan; field kode dihilangkan.
func TestBroadcastStatusWithoutLegacyCode(t *testing.T) {
	hub := NewHub(zap.NewNop())
	go hub.Run()

	client := &Client{Send: make(chan []byte, 1)}
	hub.Register <- client
	hub.BroadcastStatus("457459", models.StatusRegistered)

	select {
	case raw := <-client.Send:
		var update StatusUpdate
		require.NoError(t, json.Unmarshal(raw, &update))
		assert.Equal(t, "terdaftar", update.Status)
		assert.Nil(t, update.Kode)
	case <-time.After(time.Second):
		t.Fatal("tidak ada pesan broadcast diterima")
	}
}

func TestOriginPolicy(t *testing.T) {
	open := NewHub(zap.NewNop())
	assert.True(t, open.originAllowed("http://mana-saja.example"))
	assert.True(t, open.originAllowed(""))

	restricted := NewHub(zap.NewNop(), "https://klinik.example", "https://dashboard.klinik.example")
	assert.True(t, restricted.originAllowed("https://klinik.example"))
	assert.True(t, restricted.originAllowed("https://dashboard.klinik.example"))
	assert.False(t, restricted.originAllowed("https://jahat.example"))
	assert.False(t, restricted.originAllowed(""))
}
