package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKV is an in-memory KV for tests
type memKV struct {
	data map[string]string
	fail bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.fail {
		return "", false, errors.New("store down")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	if m.fail {
		return errors.New("store down")
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, keys ...string) error {
	if m.fail {
		return errors.New("store down")
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memKV) Scan(_ context.Context, cursor uint64, match string, _ int64) ([]string, uint64, error) {
	if m.fail {
		return nil, 0, errors.New("store down")
	}
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, 0, nil
}

func newTestStore() (*Store, *memKV, *time.Time) {
	kv := newMemKV()
	s := NewStore(kv)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, kv, &now
}

func TestRoundTrip(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	res, err := s.Check(ctx, "user-1", "draw_abc", 10)
	require.NoError(t, err)
	assert.True(t, res.IsNew)

	s.Store(ctx, "user-1", "draw_abc", map[string]string{"rune": "algiz"}, 10)

	res, err = s.Check(ctx, "user-1", "draw_abc", 10)
	require.NoError(t, err)
	assert.False(t, res.IsNew)

	var cached map[string]string
	require.NoError(t, json.Unmarshal(res.Cached, &cached))
	assert.Equal(t, "algiz", cached["rune"])
}

func TestExpiryTreatedAsAbsent(t *testing.T) {
	s, kv, now := newTestStore()
	ctx := context.Background()

	s.Store(ctx, "user-1", "draw_abc", "result", 10)

	*now = now.Add(11 * time.Minute)
	res, err := s.Check(ctx, "user-1", "draw_abc", 10)
	require.NoError(t, err)
	assert.True(t, res.IsNew)

	// The expired record was physically deleted on read.
	_, found, _ := kv.Get(ctx, "idem:user-1:draw_abc")
	assert.False(t, found)
}

func TestActorScoping(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	s.Store(ctx, "user-1", "draw_abc", "result", 10)

	res, err := s.Check(ctx, "user-2", "draw_abc", 10)
	require.NoError(t, err)
	assert.True(t, res.IsNew)
}

func TestKeyValidation(t *testing.T) {
	s, _, _ := newTestStore()
	ctx := context.Background()

	for _, bad := range []string{"", "has space", "semi;colon", "ünïcode", strings.Repeat("a", 101)} {
		res, err := s.Check(ctx, "user-1", bad, 10)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", bad)
		assert.True(t, res.IsNew, "key %q", bad)
	}

	for _, good := range []string{"a", "draw_abc-123", strings.Repeat("a", 100)} {
		_, err := s.Check(ctx, "user-1", good, 10)
		assert.NoError(t, err, "key %q", good)
	}
}

func TestFailOpenOnStoreError(t *testing.T) {
	s, kv, _ := newTestStore()
	kv.fail = true

	res, err := s.Check(context.Background(), "user-1", "draw_abc", 10)
	require.NoError(t, err)
	assert.True(t, res.IsNew)

	// Store is best-effort and must not panic or propagate.
	s.Store(context.Background(), "user-1", "draw_abc", "result", 10)
}

func TestSweepExpired(t *testing.T) {
	s, kv, now := newTestStore()
	ctx := context.Background()

	s.Store(ctx, "user-1", "old_key", "result", 10)
	*now = now.Add(25 * time.Hour)
	s.Store(ctx, "user-1", "fresh_key", "result", 10)

	deleted := s.SweepExpired(ctx, 24, 100)
	assert.Equal(t, 1, deleted)

	_, found, _ := kv.Get(ctx, "idem:user-1:old_key")
	assert.False(t, found)
	_, found, _ = kv.Get(ctx, "idem:user-1:fresh_key")
	assert.True(t, found)

	// Nothing left to sweep.
	assert.Zero(t, s.SweepExpired(ctx, 24, 100))
}

func TestSweepPageSizeBound(t *testing.T) {
	s, _, now := newTestStore()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		s.Store(ctx, "user-1", "key_"+strings.Repeat("a", i+1), "result", 10)
	}
	*now = now.Add(48 * time.Hour)

	assert.Equal(t, 4, s.SweepExpired(ctx, 24, 4))
	assert.Equal(t, 6, s.SweepExpired(ctx, 24, 100))
}
