package redisdb

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/c14220110/pemeriksaan-gateway/config"
)

var (
	rdb  *redis.Client
	once sync.Once
	err  error
)

// Connect membuka koneksi ke Redis. Kredensial diambil dari .env melalui config.go.
// Dipakai untuk session store dan draft resep saat gateway berjalan lebih dari satu instance.
func Connect() (*redis.Client, error) {
	once.Do(func() {
		cfg := config.LoadConfig()
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = rdb.Ping(ctx).Err()
	})
	return rdb, err
}
