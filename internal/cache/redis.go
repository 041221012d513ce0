// Package cache manages the shared Redis client used for rate limiting and
// token revocation.
package cache

import (
	"context"
	"log/slog"
	"time"

	"basify/internal/middleware"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis connects the shared client. The application tolerates an absent
// Redis: rate limits are skipped and tokens cannot be revoked.
func InitRedis(addr string) {
	client = redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("redis unavailable, continuing without it",
			slog.String("error", err.Error()))
		client = nil
		return
	}
	middleware.Logger.Info("redis connected")
}

// GetClient returns the shared client, nil when Redis is unavailable.
func GetClient() *redis.Client {
	return client
}

// Close closes the shared client.
func Close() {
	if client != nil {
		if err := client.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
		client = nil
	}
}
