// Package sweeper runs the periodic idempotency-record cleanup. Redis TTLs
// already bound record lifetime; the sweep reclaims records whose logical
// expiry passed well before their physical one.
package sweeper

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mysticarcade/backend/internal/idempotency"
)

// Sweeper manages the periodic sweep loop
type Sweeper struct {
	store       *idempotency.Store
	interval    time.Duration
	cutoffHours int
	pageSize    int
	stopCh      chan struct{}
	doneCh      chan struct{}
	mu          sync.Mutex
	running     bool
	lastSweep   time.Time
	sweepCount  int64
	lastDeleted int
	totalSwept  int64
}

// Config holds sweeper configuration
type Config struct {
	Interval    time.Duration
	CutoffHours int
	PageSize    int
}

// DefaultConfig returns default sweeper configuration
func DefaultConfig() *Config {
	return &Config{
		Interval:    time.Hour,
		CutoffHours: 24,
		PageSize:    100,
	}
}

// New creates a new sweeper
func New(store *idempotency.Store, cfg *Config) *Sweeper {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Sweeper{
		store:       store,
		interval:    cfg.Interval,
		cutoffHours: cfg.CutoffHours,
		pageSize:    cfg.PageSize,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins the periodic sweep loop
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[sweeper] Already running")
		return
	}
	s.running = true
	s.mu.Unlock()

	log.Printf("[sweeper] Starting with interval: %v", s.interval)

	// Run initial sweep immediately
	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[sweeper] Context cancelled, stopping")
			s.markStopped()
			return

		case <-s.stopCh:
			log.Println("[sweeper] Stop signal received")
			s.markStopped()
			return

		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

// Stop signals the sweeper to stop
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	log.Println("[sweeper] Stopping...")
	close(s.stopCh)

	select {
	case <-s.doneCh:
		log.Println("[sweeper] Stopped gracefully")
	case <-time.After(30 * time.Second):
		log.Println("[sweeper] Stop timed out")
	}
}

// markStopped marks the sweeper as stopped
func (s *Sweeper) markStopped() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	close(s.doneCh)
}

// runSweep executes a single sweep pass
func (s *Sweeper) runSweep(ctx context.Context) {
	start := time.Now()
	deleted := s.store.SweepExpired(ctx, s.cutoffHours, s.pageSize)

	s.mu.Lock()
	s.lastSweep = start
	s.sweepCount++
	s.lastDeleted = deleted
	s.totalSwept += int64(deleted)
	s.mu.Unlock()

	if deleted > 0 {
		log.Printf("[sweeper] Removed %d expired records in %v", deleted, time.Since(start).Round(time.Millisecond))
	}
}

// IsRunning returns whether the sweeper is currently running
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Stats contains sweeper statistics
type Stats struct {
	Running     bool          `json:"running"`
	Interval    time.Duration `json:"interval"`
	LastSweep   time.Time     `json:"last_sweep"`
	SweepCount  int64         `json:"sweep_count"`
	LastDeleted int           `json:"last_deleted"`
	TotalSwept  int64         `json:"total_swept"`
}

// GetStats returns sweeper statistics
func (s *Sweeper) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Running:     s.running,
		Interval:    s.interval,
		LastSweep:   s.lastSweep,
		SweepCount:  s.sweepCount,
		LastDeleted: s.lastDeleted,
		TotalSwept:  s.totalSwept,
	}
}

// RunOnce runs a single sweep pass (useful for manual triggers)
func (s *Sweeper) RunOnce(ctx context.Context) int {
	return s.store.SweepExpired(ctx, s.cutoffHours, s.pageSize)
}
