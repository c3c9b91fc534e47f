package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/moviepulse/awards-voting-api/config"
)

// NewClient connects to Redis and verifies the connection before handing
// the client out.
func NewClient(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURI,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}
