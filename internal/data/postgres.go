// Package data provides low-level data clients and connection factories.
package data

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roguepikachu/snippets/internal/config"
)

// PostgresDSN builds the connection string from configuration. PostgresURL wins when set.
func PostgresDSN(cfg config.Config) string {
	if cfg.PostgresURL != "" {
		return cfg.PostgresURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.PostgresUser, cfg.PostgresPassword),
		Host:     cfg.PostgresHost + ":" + cfg.PostgresPort,
		Path:     "/" + cfg.PostgresDB,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.PostgresSSLMode),
	}
	return u.String()
}

// NewPostgresPool creates a new pgx connection pool based on configuration.
func NewPostgresPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	pcfg.MaxConnIdleTime = 30 * time.Second
	pcfg.MaxConnLifetime = 30 * time.Minute
	return pgxpool.NewWithConfig(ctx, pcfg)
}
