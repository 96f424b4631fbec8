package apicache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "apicache:"

// Cache is a Redis-backed response cache for public, user-independent GET
// endpoints (trending pages, game detail, combined search preview). A cache
// failure is never an error for the caller; it only means a cache miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a cache around an existing Redis client.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached body for key, if present.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "cache get failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return nil, false
	}
	return data, true
}

// Set stores the body for key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, body []byte) {
	if err := c.client.Set(ctx, keyPrefix+key, body, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache set failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Ping verifies the Redis connection, for readiness checks.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
