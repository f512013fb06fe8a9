package orbs

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mysticarcade/backend/internal/database"
	"github.com/mysticarcade/backend/internal/models"
	"github.com/mysticarcade/backend/internal/repository"
)

// Status is the caller-facing view of an orb pool
type Status struct {
	Current         int  `json:"current"`
	Max             int  `json:"max"`
	NextRegenEtaSec int  `json:"next_regen_eta_sec"`
	IsPro           bool `json:"is_pro"`
}

// Service applies orb mutations against the player store. Every mutation
// re-reads state under a row lock; spend and grant fail closed on store
// errors since a balance change must never be guessed at.
type Service struct {
	db       *database.DB
	repo     *repository.PlayerRepository
	interval time.Duration
	now      func() time.Time
}

// NewService creates an orb service. interval is the regen period for one
// orb (free accounts earn exactly one orb per interval).
func NewService(db *database.DB, repo *repository.PlayerRepository, interval time.Duration) *Service {
	return &Service{
		db:       db,
		repo:     repo,
		interval: interval,
		now:      time.Now,
	}
}

// regenPlan computes the catch-up regen for a player at `now`. Pure.
func regenPlan(p *models.Player, interval time.Duration, now time.Time) (next, granted, etaSec int) {
	elapsed := SecondsSince(p.LastRegenAt, now)
	intervalSec := int(interval.Seconds())
	eligible := RegenEligible(elapsed, intervalSec)
	next, granted = ApplyRegen(clampNonNegative(p.Orbs), p.MaxOrbs, eligible)
	etaSec = NextRegenETA(next, p.MaxOrbs, elapsed, intervalSec)
	return next, granted, etaSec
}

// regenAnchor advances the regen timestamp by the consumed whole
// intervals, preserving the fractional remainder so partial progress
// toward the next orb is never lost.
func regenAnchor(p *models.Player, interval time.Duration, now time.Time) time.Time {
	elapsed := SecondsSince(p.LastRegenAt, now)
	eligible := RegenEligible(elapsed, int(interval.Seconds()))
	if eligible == 0 {
		return p.LastRegenAt
	}
	anchor := p.LastRegenAt.Add(time.Duration(eligible) * interval)
	// A full pool stops accruing; restart the interval from now.
	if n, _ := ApplyRegen(clampNonNegative(p.Orbs), p.MaxOrbs, eligible); n >= p.MaxOrbs {
		return now
	}
	return anchor
}

// Status returns the current pool state, persisting any regen catch-up
func (s *Service) Status(ctx context.Context, actorID string) (*Status, error) {
	var status *Status
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		p, err := s.repo.GetForUpdateTx(ctx, tx, actorID)
		if err != nil {
			return err
		}

		now := s.now()
		next, granted, eta := regenPlan(p, s.interval, now)
		if granted > 0 {
			if err := s.repo.UpdateOrbsTx(ctx, tx, p.ID, next, regenAnchor(p, s.interval, now)); err != nil {
				return err
			}
			log.Printf("[orbs] Regenerated %d orbs for %s (%d/%d)", granted, p.ID, next, p.MaxOrbs)
		}

		status = &Status{
			Current:         next,
			Max:             p.MaxOrbs,
			NextRegenEtaSec: eta,
			IsPro:           p.IsPro(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Spend deducts amount orbs after applying regen catch-up. Pro accounts
// always succeed and their balance is left untouched.
func (s *Service) Spend(ctx context.Context, actorID string, amount int) (*Status, error) {
	var status *Status
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		p, err := s.repo.GetForUpdateTx(ctx, tx, actorID)
		if err != nil {
			return err
		}

		now := s.now()
		balance, _, _ := regenPlan(p, s.interval, now)

		if !CanSpend(balance, amount, p.IsPro()) {
			return ErrInsufficientOrbs
		}

		next := balance
		if !p.IsPro() {
			next = clampNonNegative(balance - amount)
		}

		anchor := regenAnchor(p, s.interval, now)
		// Spending below the cap restarts accrual from a full pool's
		// perspective: a pool that was at max has no meaningful anchor.
		if balance >= p.MaxOrbs && next < p.MaxOrbs {
			anchor = now
		}
		if err := s.repo.UpdateOrbsTx(ctx, tx, p.ID, next, anchor); err != nil {
			return err
		}

		elapsed := SecondsSince(anchor, now)
		status = &Status{
			Current:         next,
			Max:             p.MaxOrbs,
			NextRegenEtaSec: NextRegenETA(next, p.MaxOrbs, elapsed, int(s.interval.Seconds())),
			IsPro:           p.IsPro(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// Grant credits up to amount orbs, capped at the account max. Returns the
// new status and the amount actually granted (may be less near the cap).
func (s *Service) Grant(ctx context.Context, actorID string, amount int) (*Status, int, error) {
	var (
		status  *Status
		granted int
	)
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		p, err := s.repo.GetForUpdateTx(ctx, tx, actorID)
		if err != nil {
			return err
		}

		now := s.now()
		balance, _, _ := regenPlan(p, s.interval, now)

		var next int
		next, granted = ApplyRegen(balance, p.MaxOrbs, amount)

		if err := s.repo.UpdateOrbsTx(ctx, tx, p.ID, next, regenAnchor(p, s.interval, now)); err != nil {
			return err
		}

		elapsed := SecondsSince(regenAnchor(p, s.interval, now), now)
		status = &Status{
			Current:         next,
			Max:             p.MaxOrbs,
			NextRegenEtaSec: NextRegenETA(next, p.MaxOrbs, elapsed, int(s.interval.Seconds())),
			IsPro:           p.IsPro(),
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return status, granted, nil
}
