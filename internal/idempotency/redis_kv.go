package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mysticarcade/backend/internal/cache"
)

// RedisKV adapts the shared Redis wrapper to the KV interface
type RedisKV struct {
	cache *cache.Redis
}

// NewRedisKV creates a Redis-backed KV for idempotency records
func NewRedisKV(c *cache.Redis) *RedisKV {
	return &RedisKV{cache: c}
}

// Get returns the value for key, reporting absence separately
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// Set writes the value for key with a TTL
func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.cache.Set(ctx, key, value, ttl)
}

// Delete removes keys
func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	return r.cache.Delete(ctx, keys...)
}

// Scan pages keys matching the pattern
func (r *RedisKV) Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error) {
	return r.cache.Scan(ctx, cursor, match, count)
}
