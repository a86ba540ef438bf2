package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// PoolOption adjusts the parsed pool config before the pool is opened.
type PoolOption func(*pgxpool.Config)

// WithMaxConns caps the pool size; the worker runs with asynq concurrency + a few.
func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

// Connect opens a pgx pool for dsn and pings it. SQLAlchemy-style DSNs
// (postgresql+asyncpg://...) are accepted, see NormalizeDSN.
func Connect(ctx context.Context, dsn string, opts ...PoolOption) (*pgxpool.Pool, error) {
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, errors.New("postgres: empty DSN")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	applyPoolDefaults(cfg, dsn)
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return pool, nil
}

// applyPoolDefaults fills settings the DSN left unset; pool_* query params win.
func applyPoolDefaults(cfg *pgxpool.Config, dsn string) {
	if cfg.ConnConfig.RuntimeParams["application_name"] == "" {
		cfg.ConnConfig.RuntimeParams["application_name"] = "hrdesk"
	}
	if !strings.Contains(dsn, "pool_max_conns") {
		cfg.MaxConns = 8
	}
	if !strings.Contains(dsn, "pool_max_conn_lifetime") {
		cfg.MaxConnLifetime = time.Hour
	}
}

var dsnSchemes = strings.NewReplacer(
	"postgresql+asyncpg://", "postgresql://",
	"postgres+asyncpg://", "postgres://",
	"postgresql+pgx://", "postgresql://",
	"postgres+pgx://", "postgres://",
)

// NormalizeDSN trims dsn and strips driver suffixes that shared .env files
// often carry for other stacks.
func NormalizeDSN(dsn string) string {
	return dsnSchemes.Replace(strings.TrimSpace(dsn))
}
