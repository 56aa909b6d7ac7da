package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/c14220110/pemeriksaan-gateway/internal/workflow/models"
)

// DraftStore menyimpan record idempotensi resep per nomor registrasi.
// Key per registrasi: workflow untuk kunjungan berbeda tidak saling ganggu.
// Get mengembalikan (nil, nil) bila tidak ada draft. Purge menghapus seluruh
// draft sekaligus dan dipanggil saat logout eksplisit; kegagalan autentikasi
// di tengah workflow TIDAK memanggil Purge supaya login ulang bisa melanjutkan.
type DraftStore interface {
	Get(noRegistrasi string) (*models.ResepDraft, error)
	Put(noRegistrasi string, draft models.ResepDraft) error
	Delete(noRegistrasi string) error
	Purge() error
}

// MemoryDraftStore menyimpan draft di proses, cukup untuk satu instance gateway.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]models.ResepDraft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]models.ResepDraft)}
}

func (s *MemoryDraftStore) Get(noRegistrasi string) (*models.ResepDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[noRegistrasi]
	if !ok {
		return nil, nil
	}
	cp := d
	return &cp, nil
}

func (s *MemoryDraftStore) Put(noRegistrasi string, draft models.ResepDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[noRegistrasi] = draft
	return nil
}

func (s *MemoryDraftStore) Delete(noRegistrasi string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, noRegistrasi)
	return nil
}

func (s *MemoryDraftStore) Purge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = make(map[string]models.ResepDraft)
	return nil
}

// RedisDraftStore membagi draft antar instance gateway lewat Redis.
type RedisDraftStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisDraftStore(rdb *redis.Client, prefix string) *RedisDraftStore {
	if prefix == "" {
		prefix = "gateway:resep-draft:"
	}
	return &RedisDraftStore{rdb: rdb, prefix: prefix}
}

func (s *RedisDraftStore) Get(noRegistrasi string) (*models.ResepDraft, error) {
	raw, err := s.rdb.Get(context.Background(), s.prefix+noRegistrasi).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d models.ResepDraft
	if uerr := json.Unmarshal([]byte(raw), &d); uerr != nil {
		// Draft rusak diperlakukan seperti tidak ada, sama dengan session store.
		_ = s.rdb.Del(context.Background(), s.prefix+noRegistrasi).Err()
		return nil, nil
	}
	return &d, nil
}

func (s *RedisDraftStore) Put(noRegistrasi string, draft models.ResepDraft) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return s.rdb.Set(context.Background(), s.prefix+noRegistrasi, b, 0).Err()
}

func (s *RedisDraftStore) Delete(noRegistrasi string) error {
	return s.rdb.Del(context.Background(), s.prefix+noRegistrasi).Err()
}

func (s *RedisDraftStore) Purge() error {
	ctx := context.Background()
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
