package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mysticarcade/backend/internal/cache"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/idempotency"
	"github.com/mysticarcade/backend/internal/sweeper"
)

func main() {
	// Set up logging
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Mystic Arcade Sweeper Worker...")

	// Load configuration
	cfg := config.Load()
	log.Printf("Environment: %s", cfg.Env)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to Redis
	redis, err := cache.NewRedisFromURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()
	log.Println("Connected to Redis")

	// Create sweeper over the idempotency store
	store := idempotency.NewStore(idempotency.NewRedisKV(redis))

	sweeperCfg := &sweeper.Config{
		Interval:    cfg.SweepInterval,
		CutoffHours: cfg.SweepCutoffHours,
		PageSize:    cfg.SweepPageSize,
	}
	log.Printf("Sweeper config: interval=%v, cutoff=%dh, page_size=%d",
		sweeperCfg.Interval, sweeperCfg.CutoffHours, sweeperCfg.PageSize)

	s := sweeper.New(store, sweeperCfg)

	// One-shot mode for cron or manual runs: sweep once and exit.
	if os.Getenv("SWEEP_ONCE") == "true" {
		deleted := s.RunOnce(ctx)
		log.Printf("One-shot sweep removed %d expired records", deleted)
		return
	}

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Start sweeper in goroutine
	go func() {
		s.Start(ctx)
	}()

	log.Println("Sweeper worker started successfully")

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("Received signal: %v", sig)

	// Initiate graceful shutdown
	log.Println("Initiating graceful shutdown...")

	if s.IsRunning() {
		s.Stop()
	}

	stats := s.GetStats()
	log.Printf("Sweeper stats: sweeps=%d, last_deleted=%d, total_swept=%d",
		stats.SweepCount, stats.LastDeleted, stats.TotalSwept)

	// Cancel context to stop any in-flight operations
	cancel()

	// Give some time for cleanup
	time.Sleep(2 * time.Second)

	log.Println("Sweeper worker stopped")
}
