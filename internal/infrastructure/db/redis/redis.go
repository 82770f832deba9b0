package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/donorhub/donorhub-api/internal/infrastructure/config"
)

// Connect initialises the Redis client backing the token cache and
// validates connectivity with a ping bounded by the dial timeout.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
