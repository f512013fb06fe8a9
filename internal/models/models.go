package models

import (
	"time"
)

// Player represents a player account: identity, tier, the orb balance and
// the progression record. All balance fields are owned by the database row;
// in-process copies are never authoritative.
type Player struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Tier         string     `json:"tier" db:"tier"`
	Orbs         int        `json:"orbs" db:"orbs"`
	MaxOrbs      int        `json:"max_orbs" db:"max_orbs"`
	LastRegenAt  time.Time  `json:"last_regen_at" db:"last_regen_at"`
	XP           int        `json:"xp" db:"xp"`
	Level        int        `json:"level" db:"level"`
	Streak       int        `json:"streak" db:"streak"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	Achievements []string   `json:"achievements" db:"achievements"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// IsPro reports whether the player has the Pro entitlement
// (unlimited orbs, XP multiplier).
func (p *Player) IsPro() bool {
	return p.Tier == TierPro
}

// PlayerResponse is the API response format for a player profile
type PlayerResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Tier         string     `json:"tier"`
	Orbs         int        `json:"orbs"`
	MaxOrbs      int        `json:"max_orbs"`
	XP           int        `json:"xp"`
	Level        int        `json:"level"`
	Streak       int        `json:"streak"`
	Achievements []string   `json:"achievements"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToResponse converts a Player to PlayerResponse
func (p *Player) ToResponse() PlayerResponse {
	achievements := p.Achievements
	if achievements == nil {
		achievements = []string{}
	}
	return PlayerResponse{
		ID:           p.ID,
		Email:        p.Email,
		Tier:         p.Tier,
		Orbs:         p.Orbs,
		MaxOrbs:      p.MaxOrbs,
		XP:           p.XP,
		Level:        p.Level,
		Streak:       p.Streak,
		Achievements: achievements,
		LastLoginAt:  p.LastLoginAt,
		CreatedAt:    p.CreatedAt,
	}
}

// Tier constants
const (
	TierFree      = "free"
	TierPro       = "pro"
	TierAnonymous = "anonymous"
)

// ProOrbSentinel is the max-orbs value stored for Pro accounts. Anything at
// or above it is treated as unlimited, so the same regen math applies to
// both tiers.
const ProOrbSentinel = 9999

// MaxOrbsForTier returns the orb capacity stored for a tier: Pro accounts
// get the unlimited sentinel, everyone else the free cap.
func MaxOrbsForTier(tier string, freeMax int) int {
	if tier == TierPro {
		return ProOrbSentinel
	}
	return freeMax
}

// IsValidTier checks if a tier is valid for a stored account
func IsValidTier(tier string) bool {
	switch tier {
	case TierFree, TierPro:
		return true
	default:
		return false
	}
}

// TierHierarchy returns the hierarchy level of a tier (higher = more privileges)
func TierHierarchy(tier string) int {
	switch tier {
	case TierPro:
		return 2
	case TierFree:
		return 1
	default:
		return 0
	}
}

// Achievement identifiers unlocked by streak thresholds
const (
	AchievementStreak3 = "streak_3"
	AchievementStreak7 = "streak_7"
)

// XP award reasons. The daily check-in reason is never multiplied.
const (
	XPReasonCheckin = "daily_checkin"
	XPReasonRitual  = "ritual"
	XPReasonWheel   = "wheel_spin"
	XPReasonVision  = "vision_watch"
)
