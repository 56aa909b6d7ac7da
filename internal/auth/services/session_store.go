package services

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/go-redis/redis/v8"

	"github.com/c14220110/pemeriksaan-gateway/internal/auth/models"
)

// SessionStore adalah sumber kebenaran tunggal "siapa yang sedang login".
// Current tidak pernah mengembalikan error: data tersimpan yang hilang atau
// rusak diperlakukan sebagai "belum login" (self-healing), bukan kondisi fatal.
type SessionStore interface {
	Save(id models.Identity) error
	Current() *models.Identity
	Clear() error
}

// FileSessionStore menyimpan identitas sebagai satu file JSON, padanan
// localStorage browser untuk deployment satu workstation.
type FileSessionStore struct {
	path string
	mu   sync.Mutex
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Save(id models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}

func (s *FileSessionStore) Current() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var id models.Identity
	if err := json.Unmarshal(b, &id); err != nil || id.Token == "" {
		// Data rusak: bersihkan supaya pembacaan berikutnya konsisten.
		_ = os.Remove(s.path)
		return nil
	}
	return &id
}

func (s *FileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// RedisSessionStore menyimpan identitas di Redis untuk gateway yang berjalan
// lebih dari satu instance di belakang load balancer.
type RedisSessionStore struct {
	rdb *redis.Client
	key string
}

func NewRedisSessionStore(rdb *redis.Client, key string) *RedisSessionStore {
	if key == "" {
		key = "gateway:session"
	}
	return &RedisSessionStore{rdb: rdb, key: key}
}

func (s *RedisSessionStore) Save(id models.Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.rdb.Set(context.Background(), s.key, b, 0).Err()
}

func (s *RedisSessionStore) Current() *models.Identity {
	raw, err := s.rdb.Get(context.Background(), s.key).Result()
	if err != nil {
		return nil
	}
	var id models.Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil || id.Token == "" {
		_ = s.rdb.Del(context.Background(), s.key).Err()
		return nil
	}
	return &id
}

func (s *RedisSessionStore) Clear() error {
	return s.rdb.Del(context.Background(), s.key).Err()
}

// MemorySessionStore dipakai di test.
type MemorySessionStore struct {
	mu sync.Mutex
	id *models.Identity
}

func NewMemorySessionStore() *MemorySessionStore { return &MemorySessionStore{} }

func (s *MemorySessionStore) Save(id models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = &id
	return nil
}

func (s *MemorySessionStore) Current() *models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return nil
	}
	cp := *s.id
	return &cp
}

func (s *MemorySessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = nil
	return nil
}
