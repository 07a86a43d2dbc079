package data

import (
	"github.com/go-redis/redis/v8"
	"github.com/roguepikachu/snippets/internal/config"
)

// NewRedisClient creates and returns a new Redis client from configuration.
func NewRedisClient(cfg config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
}
