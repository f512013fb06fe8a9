// Package idempotency detects and short-circuits duplicate requests within
// a TTL window, keyed by (actor, operation key). It is an optimization, not
// a correctness guarantee: every failure path fails open so a store outage
// never blocks a legitimate request.
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"
)

// ErrInvalidKey is returned when an idempotency key fails format
// validation. Callers should treat the request as new.
var ErrInvalidKey = errors.New("invalid idempotency key")

// keyPattern allow-lists idempotency keys: letters, digits, underscore,
// hyphen, 1-100 chars.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// KV is the key-value store consumed by the idempotency layer
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, cursor uint64, match string, count int64) ([]string, uint64, error)
}

// record is the persisted idempotency entry
type record struct {
	Result     json.RawMessage `json:"result"`
	CreatedAt  time.Time       `json:"created_at"`
	TTLMinutes int             `json:"ttl_minutes"`
}

// CheckResult reports whether a key has been seen within its TTL window
type CheckResult struct {
	IsNew  bool
	Cached json.RawMessage
}

// Store caches operation results per (actor, key)
type Store struct {
	kv  KV
	now func() time.Time
}

// NewStore creates an idempotency store over the given key-value backend
func NewStore(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

func recordKey(actor, key string) string {
	return fmt.Sprintf("idem:%s:%s", actor, key)
}

// ValidateKey checks an idempotency key against the allow-listed pattern
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}

// Check looks up a previous execution for (actor, key). A record past its
// TTL is treated as absent regardless of physical deletion timing. Store
// errors report IsNew=true.
func (s *Store) Check(ctx context.Context, actor, key string, ttlMinutes int) (CheckResult, error) {
	if err := ValidateKey(key); err != nil {
		return CheckResult{IsNew: true}, err
	}

	rkey := recordKey(actor, key)
	raw, found, err := s.kv.Get(ctx, rkey)
	if err != nil {
		log.Printf("[idempotency] Read error for %s, treating as new: %v", rkey, err)
		return CheckResult{IsNew: true}, nil
	}
	if !found {
		return CheckResult{IsNew: true}, nil
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		log.Printf("[idempotency] Corrupt record %s, treating as new: %v", rkey, err)
		return CheckResult{IsNew: true}, nil
	}

	ttl := rec.TTLMinutes
	if ttl <= 0 {
		ttl = ttlMinutes
	}
	if s.now().Sub(rec.CreatedAt) > time.Duration(ttl)*time.Minute {
		if err := s.kv.Delete(ctx, rkey); err != nil {
			log.Printf("[idempotency] Failed to delete expired %s: %v", rkey, err)
		}
		return CheckResult{IsNew: true}, nil
	}

	return CheckResult{IsNew: false, Cached: rec.Result}, nil
}

// Store caches the outcome of an executed operation. Best-effort:
// persistence failures are logged, never propagated, since the caller's
// primary operation already succeeded.
func (s *Store) Store(ctx context.Context, actor, key string, result interface{}, ttlMinutes int) {
	if err := ValidateKey(key); err != nil {
		log.Printf("[idempotency] Refusing to store invalid key %q", key)
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Printf("[idempotency] Failed to marshal result for %s: %v", key, err)
		return
	}

	rec := record{
		Result:     payload,
		CreatedAt:  s.now(),
		TTLMinutes: ttlMinutes,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		log.Printf("[idempotency] Failed to marshal record for %s: %v", key, err)
		return
	}

	// Physical TTL is a backstop; the logical created_at check governs.
	physical := time.Duration(ttlMinutes)*time.Minute + time.Hour
	rkey := recordKey(actor, key)
	if err := s.kv.Set(ctx, rkey, string(raw), physical); err != nil {
		log.Printf("[idempotency] Failed to store %s: %v", rkey, err)
	}
}

// SweepExpired batch-deletes records older than cutoffHours, at most
// pageSize per call. Safe to call repeatedly; returns the number deleted.
func (s *Store) SweepExpired(ctx context.Context, cutoffHours, pageSize int) int {
	if cutoffHours <= 0 {
		cutoffHours = 24
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	cutoff := s.now().Add(-time.Duration(cutoffHours) * time.Hour)

	deleted := 0
	var cursor uint64
	for {
		keys, next, err := s.kv.Scan(ctx, cursor, "idem:*", int64(pageSize))
		if err != nil {
			log.Printf("[idempotency] Sweep scan error: %v", err)
			return deleted
		}

		for _, k := range keys {
			if deleted >= pageSize {
				return deleted
			}
			raw, found, err := s.kv.Get(ctx, k)
			if err != nil || !found {
				continue
			}
			var rec record
			if err := json.Unmarshal([]byte(raw), &rec); err != nil {
				// Unparseable records are garbage; sweep them too.
				if err := s.kv.Delete(ctx, k); err == nil {
					deleted++
				}
				continue
			}
			if rec.CreatedAt.Before(cutoff) {
				if err := s.kv.Delete(ctx, k); err != nil {
					log.Printf("[idempotency] Sweep delete error for %s: %v", k, err)
					continue
				}
				deleted++
			}
		}

		cursor = next
		if cursor == 0 || deleted >= pageSize {
			return deleted
		}
	}
}
