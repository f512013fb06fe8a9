// Package ratelimit implements token-bucket admission control per
// (actor, operation-class) key. Bucket state lives in the shared store and
// every check-and-consume runs as an atomic read-modify-write, so
// concurrent callers for the same key cannot lose updates.
package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/mysticarcade/backend/internal/config"
)

// DefaultClassLimit applies when a caller asks about an operation class
// missing from the table. Generous on purpose: an unconfigured class is a
// wiring mistake, not a reason to block players.
var DefaultClassLimit = config.ClassLimit{Capacity: 10, RefillPerSecond: 0.5, WindowMs: 60_000}

// Store provides keyed bucket persistence with atomic read-modify-write.
type Store interface {
	// Get returns the raw record for key, reporting absence separately.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set unconditionally writes the record for key.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Update runs fn atomically for key. fn receives the current record
	// (found=false when absent) and returns the next record; write=false
	// leaves the stored record untouched.
	Update(ctx context.Context, key string, ttl time.Duration, fn func(current string, found bool) (next string, write bool, err error)) error
}

// Result is the outcome of a rate-limit check
type Result struct {
	Allowed       bool      `json:"allowed"`
	Remaining     float64   `json:"remaining"`
	ResetTime     time.Time `json:"reset_time"`
	RetryAfterSec int       `json:"retry_after_sec,omitempty"`
}

// bucketState is the persisted token-bucket record for one key
type bucketState struct {
	Tokens       float64   `json:"tokens"`
	LastRefillAt time.Time `json:"last_refill_at"`
}

// Limiter is a token-bucket rate limiter generic over the operation-class
// table. On store failure it fails open: availability is deliberately
// prioritized over strict enforcement (see DESIGN.md before changing).
type Limiter struct {
	store  Store
	limits map[string]config.ClassLimit
	now    func() time.Time
}

// NewLimiter creates a rate limiter over the given store and class table
func NewLimiter(store Store, limits map[string]config.ClassLimit) *Limiter {
	return &Limiter{
		store:  store,
		limits: limits,
		now:    time.Now,
	}
}

// Limit returns the configured limit for an operation class
func (l *Limiter) Limit(opClass string) config.ClassLimit {
	limit, ok := l.limits[opClass]
	if !ok {
		return DefaultClassLimit
	}
	return limit
}

func bucketKey(actor, opClass string) string {
	return fmt.Sprintf("bucket:%s:%s", opClass, actor)
}

// bucket TTL keeps idle keys from accumulating; a full-capacity bucket
// rebuilt from absence is identical to an expired one.
func bucketTTL(limit config.ClassLimit) time.Duration {
	if limit.RefillPerSecond <= 0 {
		return 24 * time.Hour
	}
	refillSec := limit.Capacity / limit.RefillPerSecond
	return time.Duration(refillSec)*time.Second + 24*time.Hour
}

// refill applies the elapsed-time credit to a bucket without mutating it
func refill(state bucketState, limit config.ClassLimit, now time.Time) float64 {
	elapsed := now.Sub(state.LastRefillAt)
	if elapsed < 0 {
		elapsed = 0
	}
	credit := math.Floor(elapsed.Seconds()) * limit.RefillPerSecond
	available := state.Tokens + credit
	if available > limit.Capacity {
		available = limit.Capacity
	}
	return available
}

// CheckAndConsume admits or denies one operation of the given cost.
// Denials never write: the stored timestamp keeps accruing refill credit,
// so an unfulfilled check costs the caller nothing.
func (l *Limiter) CheckAndConsume(ctx context.Context, actor, opClass string, cost float64) Result {
	limit := l.Limit(opClass)
	now := l.now()
	key := bucketKey(actor, opClass)

	result := Result{
		ResetTime: now.Add(time.Duration(limit.WindowMs) * time.Millisecond),
	}

	err := l.store.Update(ctx, key, bucketTTL(limit), func(current string, found bool) (string, bool, error) {
		state := bucketState{Tokens: limit.Capacity, LastRefillAt: now}
		if found {
			if err := json.Unmarshal([]byte(current), &state); err != nil {
				// Corrupt record: rebuild a full bucket rather than
				// locking the actor out.
				log.Printf("[ratelimit] Corrupt bucket %s: %v", key, err)
				state = bucketState{Tokens: limit.Capacity, LastRefillAt: now}
			}
		}

		available := refill(state, limit, now)
		if available < 0 {
			available = 0
		}

		if available < cost {
			result.Allowed = false
			result.Remaining = available
			result.RetryAfterSec = retryAfterSec(cost-available, limit)
			return "", false, nil
		}

		remaining := available - cost
		result.Allowed = true
		result.Remaining = remaining
		result.RetryAfterSec = 0

		next, err := json.Marshal(bucketState{Tokens: remaining, LastRefillAt: now})
		if err != nil {
			return "", false, err
		}
		return string(next), true, nil
	})
	if err != nil {
		// Fail open: allowing an extra request beats blocking legitimate
		// traffic when the store is down.
		log.Printf("[ratelimit] Store error for %s, failing open: %v", key, err)
		return Result{Allowed: true, Remaining: 0, ResetTime: result.ResetTime}
	}

	return result
}

// Status reports the current bucket state without consuming tokens
func (l *Limiter) Status(ctx context.Context, actor, opClass string) Result {
	limit := l.Limit(opClass)
	now := l.now()
	key := bucketKey(actor, opClass)

	result := Result{
		Allowed:   true,
		Remaining: limit.Capacity,
		ResetTime: now.Add(time.Duration(limit.WindowMs) * time.Millisecond),
	}

	current, found, err := l.store.Get(ctx, key)
	if err != nil {
		log.Printf("[ratelimit] Status read error for %s: %v", key, err)
		return result
	}
	if !found {
		return result
	}

	var state bucketState
	if err := json.Unmarshal([]byte(current), &state); err != nil {
		log.Printf("[ratelimit] Corrupt bucket %s: %v", key, err)
		return result
	}

	result.Remaining = refill(state, limit, now)
	result.Allowed = result.Remaining >= 1
	if !result.Allowed {
		result.RetryAfterSec = retryAfterSec(1-result.Remaining, limit)
	}
	return result
}

// Reset restores the bucket to full capacity
func (l *Limiter) Reset(ctx context.Context, actor, opClass string) error {
	limit := l.Limit(opClass)
	state, err := json.Marshal(bucketState{Tokens: limit.Capacity, LastRefillAt: l.now()})
	if err != nil {
		return err
	}
	key := bucketKey(actor, opClass)
	if err := l.store.Set(ctx, key, string(state), bucketTTL(limit)); err != nil {
		return fmt.Errorf("failed to reset bucket %s: %w", key, err)
	}
	return nil
}

// retryAfterSec computes how long until `deficit` tokens have refilled
func retryAfterSec(deficit float64, limit config.ClassLimit) int {
	if limit.RefillPerSecond <= 0 {
		return int(limit.WindowMs / 1000)
	}
	return int(math.Ceil(deficit / limit.RefillPerSecond))
}
