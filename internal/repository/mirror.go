// Package repository selects the durable progress mirror backend.
package repository

import (
	"context"
	"fmt"

	"github.com/Rrens/mock-analyst/internal/config"
	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/repository/file"
	mongorepo "github.com/Rrens/mock-analyst/internal/repository/mongo"
	mysqlrepo "github.com/Rrens/mock-analyst/internal/repository/mysql"
	"github.com/Rrens/mock-analyst/internal/repository/postgres"
	redisrepo "github.com/Rrens/mock-analyst/internal/repository/redis"
	"github.com/Rrens/mock-analyst/internal/repository/sqlite"
)

// Mirror is an opened progress mirror with its cleanup and health check.
// Mirror.ProgressMirror is nil for the memory backend.
type Mirror struct {
	domain.ProgressMirror
	Backend string
	Ping    func(ctx context.Context) error
	Close   func(ctx context.Context) error
}

func noop(context.Context) error { return nil }

// OpenMirror opens the backend named by cfg.Progress.Backend
func OpenMirror(ctx context.Context, cfg *config.Config) (*Mirror, error) {
	backend := cfg.Progress.Backend
	m := &Mirror{Backend: backend, Ping: noop, Close: noop}

	switch backend {
	case config.BackendMemory:
		return m, nil

	case config.BackendFile:
		mirror, err := file.NewProgressMirror(cfg.Progress.LogsDir)
		if err != nil {
			return nil, err
		}
		m.ProgressMirror = mirror

	case config.BackendRedis:
		client, err := redisrepo.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		m.ProgressMirror = redisrepo.NewProgressMirror(client, cfg.Progress.RetentionTTL)
		m.Ping = client.Ping
		m.Close = func(context.Context) error { return client.Close() }

	case config.BackendPostgres:
		if err := postgres.RunMigrations(cfg.Database.DSN(), postgres.DefaultMigrationsURL); err != nil {
			return nil, err
		}
		pool, err := postgres.OpenPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		mirror := postgres.NewProgressMirror(pool)
		m.ProgressMirror = mirror
		m.Ping = mirror.Ping
		m.Close = mirror.Close

	case config.BackendSQLite:
		mirror, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		m.ProgressMirror = mirror
		m.Close = func(context.Context) error { return mirror.Close() }

	case config.BackendMySQL:
		mirror, err := mysqlrepo.Open(ctx, cfg.MySQL)
		if err != nil {
			return nil, err
		}
		m.ProgressMirror = mirror
		m.Close = func(context.Context) error { return mirror.Close() }

	case config.BackendMongo:
		mirror, err := mongorepo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		m.ProgressMirror = mirror
		m.Close = mirror.Close

	default:
		return nil, fmt.Errorf("unknown progress backend %q", backend)
	}

	return m, nil
}
