// Package cache keeps computed reports in Redis so repeated page loads do
// not re-aggregate every collection.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/staydesk/backoffice-api/internal/config"
)

// Redis is a JSON value cache with a shared key prefix
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis connects using a redis:// URL or a bare host:port address
func NewRedis(cfg config.RedisConfig) (*Redis, error) {
	var opts *redis.Options
	if strings.Contains(cfg.URL, "://") {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.URL}
	}
	return NewRedisWithClient(redis.NewClient(opts), cfg.ReportTTL, cfg.KeyPrefix), nil
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(client *redis.Client, ttl time.Duration, prefix string) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Redis{client: client, ttl: ttl, prefix: prefix}
}

// Get loads key into dest. A miss returns false with no error.
func (c *Redis) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key for the configured TTL
func (c *Redis) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// Invalidate drops every key under the prefix
func (c *Redis) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping checks connectivity
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool
func (c *Redis) Close() error {
	return c.client.Close()
}

// Noop never stores anything; used when REDIS_URL is unset
type Noop struct{}

// Get always misses
func (Noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) { return false, nil }

// Set discards the value
func (Noop) Set(ctx context.Context, key string, value interface{}) error { return nil }

// Invalidate does nothing
func (Noop) Invalidate(ctx context.Context) error { return nil }
