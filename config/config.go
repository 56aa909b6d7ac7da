package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	Port      string
	JWTSecret string

	// Base URL layanan remote. Sesuai arsitektur lama: pendaftaran, pemeriksaan
	// (termasuk e-resep dan status), katalog obat, dan identity service terpisah.
	AuthBaseURL        string
	PendaftaranBaseURL string
	PemeriksaanBaseURL string
	ObatBaseURL        string

	// Timeout konservatif satu kali panggilan ke layanan remote.
	ClientTimeout time.Duration

	// Redis opsional untuk session dan draft resep lintas instance.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Lokasi file session untuk deployment satu workstation (default).
	SessionFile string

	// Origin yang boleh membuka koneksi WebSocket dashboard, dipisah koma.
	// Kosong berarti semua origin diterima (dev).
	WSAllowedOrigins []string
}

var (
	cfg  *Config
	once sync.Once
)

func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv:             os.Getenv("APP_ENV"),
			Port:               getenvDefault("PORT", "8080"),
			JWTSecret:          os.Getenv("JWT_SECRET"),
			AuthBaseURL:        os.Getenv("AUTH_BASE_URL"),
			PendaftaranBaseURL: os.Getenv("PENDAFTARAN_BASE_URL"),
			PemeriksaanBaseURL: os.Getenv("PEMERIKSAAN_BASE_URL"),
			ObatBaseURL:        os.Getenv("OBAT_BASE_URL"),
			ClientTimeout:      durationSeconds("CLIENT_TIMEOUT_SECONDS", 15),
			RedisAddr:          os.Getenv("REDIS_ADDR"),
			RedisPassword:      os.Getenv("REDIS_PASSWORD"),
			RedisDB:            intDefault("REDIS_DB", 0),
			SessionFile:        getenvDefault("SESSION_FILE", "session.json"),
			WSAllowedOrigins:   splitList(os.Getenv("WS_ALLOWED_ORIGINS")),
		}
	})
	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s bukan angka (%q), memakai default %d", key, v, def)
		return def
	}
	return n
}

func durationSeconds(key string, def int) time.Duration {
	return time.Duration(intDefault(key, def)) * time.Second
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
