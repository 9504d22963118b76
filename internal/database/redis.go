package database

import (
	"context"
	"fmt"
	"time"

	"restaurant_backend/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis for login throttling.
// An empty URL means throttling is disabled and (nil, nil) is returned.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	utils.LogInfo("Successfully connected to Redis", map[string]interface{}{"addr": opts.Addr})
	return client, nil
}
