package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PROFILE_CACHE_TTL", "")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 5*time.Minute, cfg.ProfileCacheTTL)
	assert.Equal(t, "@every 10m", cfg.SweepSchedule)
	assert.Equal(t, "hrdesk:changes", cfg.ChangefeedChannel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_BACKEND", "POSTGRES")
	t.Setenv("DB_URL", " postgres://u:p@localhost:5432/hr ")
	t.Setenv("PROFILE_CACHE_TTL", "30s")
	t.Setenv("ASYNQ_CONCURRENCY", "4")
	t.Setenv("WS_ALLOWED_ORIGINS", "https://hr.example.com, ,https://admin.example.com ")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, "postgres://u:p@localhost:5432/hr", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.ProfileCacheTTL)
	assert.Equal(t, 4, cfg.AsynqConcurrency)
	assert.Equal(t, []string{"https://hr.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"missing secret", Config{StorageBackend: StorageMemory}, false},
		{"postgres without dsn", Config{JWTSecret: "s", StorageBackend: StoragePostgres}, false},
		{"unknown backend", Config{JWTSecret: "s", StorageBackend: "sqlite"}, false},
		{"memory", Config{JWTSecret: "s", StorageBackend: StorageMemory}, true},
		{"postgres", Config{JWTSecret: "s", StorageBackend: StoragePostgres, DatabaseURL: "postgres://x"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
