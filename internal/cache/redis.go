package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "scoracle:"

// Redis stores entries in Redis so several API instances share one cache.
// The ETag is recomputed from the stored bytes on read.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis connects to url (redis://...) and verifies the connection.
func NewRedis(ctx context.Context, url string, logger *slog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client, logger: logger}, nil
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client, logger *slog.Logger) *Redis {
	return &Redis{client: client, logger: logger}
}

// Get retrieves a cached value. Redis errors count as a miss.
func (c *Redis) Get(ctx context.Context, key string) ([]byte, string, bool) {
	data, err := c.client.Get(ctx, redisPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Redis get failed", "key", key, "error", err)
		}
		return nil, "", false
	}
	return data, ComputeETag(data), true
}

// Set stores a value with a TTL. Failures are logged, not returned: the
// cache is an optimization.
func (c *Redis) Set(ctx context.Context, key string, data []byte, ttl time.Duration) string {
	if err := c.client.Set(ctx, redisPrefix+key, data, ttl).Err(); err != nil {
		c.logger.Warn("Redis set failed", "key", key, "error", err)
	}
	return ComputeETag(data)
}

// Delete drops key if present.
func (c *Redis) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, redisPrefix+key).Err(); err != nil {
		c.logger.Warn("Redis delete failed", "key", key, "error", err)
	}
}

// Stats reports connectivity and the number of keys in the database.
func (c *Redis) Stats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{"backend": "redis", "enabled": true}
	n, err := c.client.DBSize(ctx).Result()
	if err != nil {
		stats["error"] = err.Error()
		return stats
	}
	stats["total_keys"] = n
	return stats
}

// Close closes the underlying client.
func (c *Redis) Close() error {
	return c.client.Close()
}
