package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Rrens/mock-analyst/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool settings for the progress mirror. Each emit is one upsert.
const (
	applicationName   = "mock-analyst-progress"
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = 30 * time.Second
	statementTimeout  = 5 * time.Second
)

// OpenPool connects the pool backing the progress mirror
func OpenPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// newPoolConfig applies the mirror pool settings. Zero MaxConns keeps the pgx default.
func newPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = min(cfg.MinConns, poolConfig.MaxConns)
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod

	params := poolConfig.ConnConfig.RuntimeParams
	params["application_name"] = applicationName
	params["statement_timeout"] = strconv.FormatInt(statementTimeout.Milliseconds(), 10)

	return poolConfig, nil
}
