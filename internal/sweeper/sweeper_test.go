package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysticarcade/backend/internal/idempotency"
)

// nilKV is an empty KV backing; every sweep finds nothing to delete
type nilKV struct{}

func (nilKV) Get(context.Context, string) (string, bool, error)          { return "", false, nil }
func (nilKV) Set(context.Context, string, string, time.Duration) error  { return nil }
func (nilKV) Delete(context.Context, ...string) error                   { return nil }
func (nilKV) Scan(context.Context, uint64, string, int64) ([]string, uint64, error) {
	return nil, 0, nil
}

func newTestSweeper(interval time.Duration) *Sweeper {
	store := idempotency.NewStore(nilKV{})
	return New(store, &Config{Interval: interval, CutoffHours: 24, PageSize: 100})
}

func TestRunOnce(t *testing.T) {
	s := newTestSweeper(time.Hour)
	assert.Zero(t, s.RunOnce(context.Background()))
	// A manual pass leaves the loop state untouched.
	assert.False(t, s.IsRunning())
	assert.Zero(t, s.GetStats().SweepCount)
}

func TestLifecycleAndStats(t *testing.T) {
	s := newTestSweeper(time.Hour)
	assert.False(t, s.IsRunning())

	go s.Start(context.Background())

	require.Eventually(t, s.IsRunning, time.Second, 5*time.Millisecond)

	s.Stop()
	require.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 5*time.Millisecond)

	stats := s.GetStats()
	assert.False(t, stats.Running)
	assert.Equal(t, time.Hour, stats.Interval)
	// Start always runs one initial pass before waiting on the ticker.
	assert.Equal(t, int64(1), stats.SweepCount)
	assert.Zero(t, stats.LastDeleted)
	assert.False(t, stats.LastSweep.IsZero())
}

func TestStartTwiceIsRejected(t *testing.T) {
	s := newTestSweeper(time.Hour)

	go s.Start(context.Background())
	require.Eventually(t, s.IsRunning, time.Second, 5*time.Millisecond)

	// Second Start returns immediately instead of spawning a second loop.
	s.Start(context.Background())
	assert.True(t, s.IsRunning())

	s.Stop()
	require.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 5*time.Millisecond)
}
