package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mysticarcade/backend/internal/cache"
)

// maxTxRetries bounds the optimistic-transaction retry loop. Contention on
// a single actor+class key is short-lived; past this the store is treated
// as failed and the limiter's fail-open policy takes over.
const maxTxRetries = 5

// RedisStore implements Store on Redis. Update uses WATCH so that two
// concurrent consumers of the same bucket serialize instead of losing an
// update.
type RedisStore struct {
	cache *cache.Redis
}

// NewRedisStore creates a bucket store backed by Redis
func NewRedisStore(c *cache.Redis) *RedisStore {
	return &RedisStore{cache: c}
}

// Get returns the raw record for key
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// Set unconditionally writes the record for key
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.cache.Set(ctx, key, value, ttl)
}

// Update runs fn under WATCH on key, retrying when a concurrent writer
// invalidates the transaction.
func (s *RedisStore) Update(ctx context.Context, key string, ttl time.Duration, fn func(current string, found bool) (string, bool, error)) error {
	var lastErr error

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.cache.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, key).Result()
			found := true
			if err != nil {
				if !errors.Is(err, redis.Nil) {
					return err
				}
				current, found = "", false
			}

			next, write, err := fn(current, found)
			if err != nil {
				return err
			}
			if !write {
				return nil
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, next, ttl)
				return nil
			})
			return err
		}, key)

		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("bucket update contention on %s: %w", key, lastErr)
}
