// Package config provides configuration loading for the snippets tool.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Supported storage backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// Config holds environment configuration for the snippets tool.
type Config struct {
	// Backend selects the PersistentStore implementation.
	Backend string `env:"SNIPPETS_BACKEND" envDefault:"postgres"`

	// PostgresURL takes precedence over the discrete Postgres fields when set.
	PostgresURL      string `env:"POSTGRES_URL"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"127.0.0.1"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"snippets"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"snippets.db"`

	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"snippets"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"debug"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	// LogFile receives log output; "-" means stderr.
	LogFile string `env:"LOG_FILE" envDefault:"snippets.log"`

	PingTimeout time.Duration `env:"SNIPPETS_PING_TIMEOUT" envDefault:"1s"`
}

func loadDotEnv() error {
	// Load .env files listed in DOTENV_PATHS into the environment if present.
	// Does not override existing environ variables.
	path := os.Getenv("DOTENV_PATHS")
	if path == "" {
		return nil
	}
	if err := godotenv.Load(strings.Split(path, ",")...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// Load reads .env files and environment variables into a Config.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendPostgres, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendPostgres, BackendSQLite, BackendRedis)
	}
	if c.PingTimeout < 0 {
		return fmt.Errorf("ping timeout must not be negative, got %s", c.PingTimeout)
	}
	return nil
}
