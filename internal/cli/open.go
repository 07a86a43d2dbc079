package cli

import (
	"context"
	"fmt"

	"github.com/roguepikachu/snippets/internal/config"
	"github.com/roguepikachu/snippets/internal/data"
	"github.com/roguepikachu/snippets/internal/repository/postgres"
	"github.com/roguepikachu/snippets/internal/repository/redis"
	"github.com/roguepikachu/snippets/internal/repository/sqlite"
)

// OpenStore connects to the backend named by cfg.Backend. The handle is meant
// to live for the rest of the process.
func OpenStore(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := data.NewPostgresPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		repo := postgres.NewSnippetRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return repo, nil
	case config.BackendSQLite:
		repo, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.BackendRedis:
		return redis.NewSnippetRepository(data.NewRedisClient(cfg), cfg.RedisPrefix), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
