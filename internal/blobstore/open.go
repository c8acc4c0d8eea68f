package blobstore

import (
	"context"
	"fmt"

	"tasker/internal/config"
)

// Open constructs the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(), nil
	case "", "file":
		return NewFile(cfg.DataPath()), nil
	case "redis":
		return NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
	case "postgres":
		return NewPostgres(ctx, cfg.Postgres.DSN, cfg.Postgres.Table)
	case "mysql":
		return NewMySQL(ctx, cfg.MySQL.DSN, cfg.MySQL.Table)
	case "drive":
		return NewDrive(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

// NeedsAuth reports whether backend requires `tasker login` first.
func NeedsAuth(backend string) bool {
	return backend == "drive"
}
