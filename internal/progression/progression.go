// Package progression handles XP accumulation, level derivation, the daily
// login streak and achievement unlocks. Level is always re-derived from XP,
// never trusted from a stored value.
package progression

import (
	"math"
	"time"

	"github.com/mysticarcade/backend/internal/models"
)

// Streak thresholds that unlock achievements
var streakAchievements = []struct {
	Threshold int
	ID        string
}{
	{3, models.AchievementStreak3},
	{7, models.AchievementStreak7},
}

// LevelFromXP derives the level for an XP total:
// max(1, floor(0.1 * sqrt(xp))). Total and monotonic non-decreasing.
func LevelFromXP(xp int) int {
	if xp <= 0 {
		return 1
	}
	level := int(math.Floor(0.1 * math.Sqrt(float64(xp))))
	if level < 1 {
		return 1
	}
	return level
}

// XPForLevel returns the minimum XP total that reaches a level, the
// inverse of LevelFromXP. Levels at or below 1 need no XP.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return level * level * 100
}

// AdjustedXP applies the Pro multiplier to an award. The daily check-in
// reason is always unmultiplied; the adjusted amount is floored.
func AdjustedXP(amount int, reason string, isPro bool, multiplier float64) int {
	if !isPro || reason == models.XPReasonCheckin {
		return amount
	}
	return int(math.Floor(float64(amount) * multiplier))
}

// SameUTCDay reports whether two instants fall on the same UTC calendar day
func SameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// streakPlan is the pure outcome of a daily check-in attempt
type streakPlan struct {
	Streak          int
	AwardedXP       int
	NewAchievements []string
	Continued       bool
}

// planStreak computes the streak update for a check-in at `now`.
// Re-entry within the same UTC day is a no-op. A different day always
// increments by exactly one; the streak never resets on a gap (observed
// product behavior, preserved deliberately).
func planStreak(p *models.Player, now time.Time, checkinXP int) streakPlan {
	if p.LastLoginAt != nil && SameUTCDay(*p.LastLoginAt, now) {
		return streakPlan{Streak: p.Streak, AwardedXP: 0, Continued: false}
	}

	plan := streakPlan{
		Streak:    p.Streak + 1,
		AwardedXP: checkinXP,
		Continued: true,
	}

	have := make(map[string]bool, len(p.Achievements))
	for _, a := range p.Achievements {
		have[a] = true
	}
	for _, sa := range streakAchievements {
		if plan.Streak >= sa.Threshold && !have[sa.ID] {
			plan.NewAchievements = append(plan.NewAchievements, sa.ID)
		}
	}

	return plan
}
