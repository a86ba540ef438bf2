package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// StorageBackend selects which repository adapters the binaries wire.
type StorageBackend string

const (
	StoragePostgres StorageBackend = "postgres"
	StorageMemory   StorageBackend = "memory"
)

type Config struct {
	HTTPPort string
	LogLevel string

	StorageBackend StorageBackend
	DatabaseURL    string
	RedisURL       string

	JWTSecret string

	ProfileCacheTTL time.Duration

	AsynqConcurrency int
	AsynqQueues      string

	SweepSchedule string

	NodeID            string
	ChangefeedChannel string

	AllowedOrigins []string
}

// Load reads .env (if present) and the process environment.
// The returned bool reports whether a .env file was loaded.
func Load() (*Config, bool, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StorageBackend:    StorageBackend(strings.ToLower(getEnv("STORAGE_BACKEND", string(StoragePostgres)))),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DB_URL")),
		RedisURL:          strings.TrimSpace(os.Getenv("REDIS_URL")),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		ProfileCacheTTL:   getEnvAsDuration("PROFILE_CACHE_TTL", 5*time.Minute),
		AsynqConcurrency:  getEnvAsInt("ASYNQ_CONCURRENCY", 10),
		AsynqQueues:       getEnv("ASYNQ_QUEUES", "notifications=3,default=1"),
		SweepSchedule:     getEnv("SWEEP_SCHEDULE", "@every 10m"),
		NodeID:            getEnv("NODE_ID", ""),
		ChangefeedChannel: getEnv("CHANGEFEED_CHANNEL", "hrdesk:changes"),
		AllowedOrigins:    getEnvAsList("WS_ALLOWED_ORIGINS"),
	}
	return cfg, loaded, cfg.Validate()
}

// Validate checks the settings every binary depends on.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	switch c.StorageBackend {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DB_URL must be set when STORAGE_BACKEND=postgres")
		}
	case StorageMemory:
	default:
		return errors.New("config: STORAGE_BACKEND must be postgres or memory")
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if i, err := strconv.Atoi(getEnv(key, "")); err == nil && i > 0 {
		return i
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return def
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
