package progression

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mysticarcade/backend/internal/database"
	"github.com/mysticarcade/backend/internal/repository"
)

// ErrAccountNotFound is returned when progression is requested for a
// missing account. Fatal to the calling action; never retried here.
var ErrAccountNotFound = errors.New("account not found")

// XPResult is the outcome of an XP award
type XPResult struct {
	XP      int `json:"xp"`
	Level   int `json:"level"`
	Awarded int `json:"awarded"`
}

// StreakResult is the outcome of a daily check-in
type StreakResult struct {
	Streak          int      `json:"streak"`
	AwardedXP       int      `json:"awarded_xp"`
	NewAchievements []string `json:"new_achievements,omitempty"`
	XP              int      `json:"xp"`
	Level           int      `json:"level"`
}

// Service persists progression mutations. Like orb spends, these fail
// closed: a store error propagates rather than risking a double-applied
// or lost award.
type Service struct {
	db         *database.DB
	repo       *repository.PlayerRepository
	multiplier float64
	checkinXP  int
	now        func() time.Time
}

// NewService creates a progression service
func NewService(db *database.DB, repo *repository.PlayerRepository, proMultiplier float64, checkinXP int) *Service {
	return &Service{
		db:         db,
		repo:       repo,
		multiplier: proMultiplier,
		checkinXP:  checkinXP,
		now:        time.Now,
	}
}

// AddXP awards XP for a reason, applying the Pro multiplier where it
// applies, and recomputes the level from the new total.
func (s *Service) AddXP(ctx context.Context, actorID string, amount int, reason string) (*XPResult, error) {
	var result *XPResult
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		p, err := s.repo.GetForUpdateTx(ctx, tx, actorID)
		if err != nil {
			return mapNotFound(err)
		}

		awarded := AdjustedXP(amount, reason, p.IsPro(), s.multiplier)
		p.XP += awarded
		p.Level = LevelFromXP(p.XP)

		if err := s.repo.UpdateProgressTx(ctx, tx, p); err != nil {
			return mapNotFound(err)
		}

		result = &XPResult{XP: p.XP, Level: p.Level, Awarded: awarded}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[progression] %s +%dxp (%s) -> level %d", actorID, result.Awarded, reason, result.Level)
	return result, nil
}

// UpdateDailyStreak applies a daily check-in at `now`. Same-day re-entry
// is idempotent; a new UTC day increments the streak, awards the
// unmultiplied check-in XP bonus and unlocks streak achievements, all in
// one transaction.
func (s *Service) UpdateDailyStreak(ctx context.Context, actorID string) (*StreakResult, error) {
	var result *StreakResult
	err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		p, err := s.repo.GetForUpdateTx(ctx, tx, actorID)
		if err != nil {
			return mapNotFound(err)
		}

		now := s.now()
		plan := planStreak(p, now, s.checkinXP)
		if !plan.Continued {
			result = &StreakResult{
				Streak: p.Streak,
				XP:     p.XP,
				Level:  LevelFromXP(p.XP),
			}
			return nil
		}

		p.Streak = plan.Streak
		p.XP += plan.AwardedXP
		p.Level = LevelFromXP(p.XP)
		p.LastLoginAt = &now
		p.Achievements = append(p.Achievements, plan.NewAchievements...)

		if err := s.repo.UpdateProgressTx(ctx, tx, p); err != nil {
			return mapNotFound(err)
		}

		result = &StreakResult{
			Streak:          p.Streak,
			AwardedXP:       plan.AwardedXP,
			NewAchievements: plan.NewAchievements,
			XP:              p.XP,
			Level:           p.Level,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if result.AwardedXP > 0 {
		log.Printf("[progression] %s checked in: streak %d, +%dxp", actorID, result.Streak, result.AwardedXP)
	}
	return result, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return ErrAccountNotFound
	}
	return err
}
