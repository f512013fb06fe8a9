// Package orbs implements the regenerating orb pool: time-based regen
// toward a per-account cap, spend and grant mutations, and ETA reporting.
// The math here is pure; persistence runs through Service.
package orbs

import (
	"errors"
	"time"
)

// ErrInsufficientOrbs is returned when a spend exceeds the current balance
var ErrInsufficientOrbs = errors.New("insufficient orbs")

// SecondsSince returns the whole seconds elapsed since last, never negative
func SecondsSince(last, now time.Time) int {
	sec := int(now.Sub(last).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}

// RegenEligible returns how many whole regen intervals have elapsed
func RegenEligible(elapsedSec, intervalSec int) int {
	if intervalSec <= 0 || elapsedSec < intervalSec {
		return 0
	}
	return elapsedSec / intervalSec
}

// ApplyRegen grants up to toGrant orbs without exceeding max. Returns the
// new balance and the amount actually granted (0 when toGrant <= 0 or the
// pool is already full).
func ApplyRegen(current, max, toGrant int) (next, granted int) {
	if toGrant <= 0 || current >= max {
		return current, 0
	}
	granted = toGrant
	if granted > max-current {
		granted = max - current
	}
	return current + granted, granted
}

// NextRegenETA returns seconds until the next orb regenerates, 0 when the
// pool is full.
func NextRegenETA(current, max, elapsedSec, intervalSec int) int {
	if current >= max {
		return 0
	}
	if intervalSec <= 0 {
		return 0
	}
	return intervalSec - (elapsedSec % intervalSec)
}

// CanSpend reports whether the account can afford the spend. Pro accounts
// always can.
func CanSpend(current, amount int, isPro bool) bool {
	if isPro {
		return true
	}
	return current >= amount
}

// clampNonNegative guards money-like balances against invariant bugs: the
// algorithms never produce a negative count, but a balance must not go
// below zero even if one slips through.
func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
