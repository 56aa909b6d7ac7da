package ws

// Hub menyimpan koneksi client dashboard dan mem-broadcast perubahan status
// kunjungan ke semuanya, supaya layar antrian dokter/perawat terbarui tanpa polling.

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/models"
)

// Client mewakili satu koneksi WebSocket dashboard.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// StatusUpdate adalah pesan broadcast satu transisi status kunjungan.
// Kode angka warisan disertakan untuk dashboard lama yang masih membacanya.
type StatusUpdate struct {
	NoRegistrasi string `json:"no_registrasi"`
	Status       string `json:"status"`
	Kode         *int   `json:"kode,omitempty"`
}

type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	logger         *zap.Logger
	allowedOrigins map[string]bool
}

// NewHub membuat hub broadcast. allowedOrigins membatasi Origin yang boleh
// membuka koneksi WebSocket; kosong berarti semua origin diterima (dev).
func NewHub(logger *zap.Logger, allowedOrigins ...string) *Hub {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o != "" {
			origins[o] = true
		}
	}
	return &Hub{
		Clients:        make(map[*Client]bool),
		Broadcast:      make(chan []byte),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		logger:         logger,
		allowedOrigins: origins,
	}
}

func (h *Hub) originAllowed(origin string) bool {
	if len(h.allowedOrigins) == 0 {
		return true
	}
	return h.allowedOrigins[origin]
}

// BroadcastStatus mengirim satu transisi status ke seluruh client terhubung.
func (h *Hub) BroadcastStatus(noRegistrasi string, st models.Status) {
	update := StatusUpdate{NoRegistrasi: noRegistrasi, Status: st.String()}
	if code, ok := st.LegacyCode(); ok {
		update.Kode = &code
	}
	b, err := json.Marshal(update)
	if err != nil {
		h.logger.Warn("gagal serialisasi status update", zap.Error(err))
		return
	}
	h.Broadcast <- b
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			h.logger.Debug("client dashboard terhubung")
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				h.logger.Debug("client dashboard terputus")
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}
