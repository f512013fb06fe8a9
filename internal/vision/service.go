package vision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mysticarcade/backend/internal/cache"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/models"
)

// Service reads and records per-actor watch state. Read failures degrade
// to "no prior watches": the gate prefers letting a watch through over
// blocking the reward flow on a cache outage.
type Service struct {
	cache *cache.Redis
	cfg   config.VisionSnapshot
	now   func() time.Time
}

// NewService creates a vision gate service with a config snapshot
func NewService(c *cache.Redis, cfg config.VisionSnapshot) *Service {
	return &Service{cache: c, cfg: cfg, now: time.Now}
}

func lastWatchKey(actor string) string {
	return fmt.Sprintf("vision:last:%s", actor)
}

func dailyCountKey(actor string, day time.Time) string {
	return fmt.Sprintf("vision:count:%s:%s", actor, day.UTC().Format("2006-01-02"))
}

// Eligibility evaluates the gate for a player (nil = unauthenticated)
func (s *Service) Eligibility(ctx context.Context, player *models.Player) Decision {
	now := s.now()

	in := Input{
		Authenticated:   player != nil,
		Enabled:         s.cfg.Enabled,
		CooldownMinutes: s.cfg.CooldownMinutes,
		DailyLimit:      s.cfg.DailyLimit,
		Now:             now,
	}
	if player == nil {
		return Decide(in)
	}
	in.Pro = player.IsPro()
	in.LastWatchAt = s.lastWatchAt(ctx, player.ID)
	in.WatchesToday = s.watchesToday(ctx, player.ID, now)

	return Decide(in)
}

// RecordWatch marks a completed watch: stamps the cooldown and bumps the
// daily counter. Returns the new daily count.
//
// Eligibility and RecordWatch are separate round trips, so two requests
// racing the same cooldown window can both pass the check. The stake is
// one bonus orb and the daily counter still bounds the day, so the race
// is accepted rather than paying for a WATCH transaction on every watch.
func (s *Service) RecordWatch(ctx context.Context, actorID string) (int, error) {
	now := s.now()

	cooldown := time.Duration(s.cfg.CooldownMinutes) * time.Minute
	if err := s.cache.Set(ctx, lastWatchKey(actorID), now.UTC().Format(time.RFC3339), cooldown+24*time.Hour); err != nil {
		return 0, fmt.Errorf("failed to record watch time: %w", err)
	}

	countKey := dailyCountKey(actorID, now)
	count, err := s.cache.Incr(ctx, countKey)
	if err != nil {
		return 0, fmt.Errorf("failed to bump watch count: %w", err)
	}
	// Counter only matters for today; 48h covers timezone stragglers.
	if err := s.cache.Expire(ctx, countKey, 48*time.Hour); err != nil {
		log.Printf("[vision] Failed to set expiry on %s: %v", countKey, err)
	}

	return int(count), nil
}

func (s *Service) lastWatchAt(ctx context.Context, actorID string) *time.Time {
	raw, err := s.cache.Get(ctx, lastWatchKey(actorID))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[vision] Failed to read last watch for %s: %v", actorID, err)
		}
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		log.Printf("[vision] Corrupt last-watch record for %s: %v", actorID, err)
		return nil
	}
	return &t
}

func (s *Service) watchesToday(ctx context.Context, actorID string, now time.Time) int {
	raw, err := s.cache.Get(ctx, dailyCountKey(actorID, now))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[vision] Failed to read watch count for %s: %v", actorID, err)
		}
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
