package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gymbuddy-api/config"
)

// InitializeRedis connects the catalog cache client and pings it once so a
// bad address fails at startup rather than on the first request.
func InitializeRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
