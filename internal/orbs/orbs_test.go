package orbs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mysticarcade/backend/internal/models"
)

func TestSecondsSince(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, SecondsSince(base, base))
	assert.Equal(t, 90, SecondsSince(base, base.Add(90*time.Second)))
	// Clock skew must never produce negative elapsed time.
	assert.Equal(t, 0, SecondsSince(base, base.Add(-time.Minute)))
}

func TestRegenEligible(t *testing.T) {
	assert.Equal(t, 0, RegenEligible(0, 3600))
	assert.Equal(t, 0, RegenEligible(3599, 3600))
	assert.Equal(t, 1, RegenEligible(3600, 3600))
	assert.Equal(t, 2, RegenEligible(7200, 3600))
	assert.Equal(t, 2, RegenEligible(7300, 3600))
	assert.Equal(t, 0, RegenEligible(100, 0))
}

func TestApplyRegen(t *testing.T) {
	tests := []struct {
		name                 string
		current, max, grant  int
		wantNext, wantGranted int
	}{
		{"normal grant", 3, 6, 2, 5, 2},
		{"capped at max", 5, 6, 3, 6, 1},
		{"already full", 6, 6, 2, 6, 0},
		{"zero grant", 3, 6, 0, 3, 0},
		{"negative grant is a no-op", 3, 6, -1, 3, 0},
		{"empty to full", 0, 6, 10, 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, granted := ApplyRegen(tt.current, tt.max, tt.grant)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantGranted, granted)
		})
	}
}

func TestApplyRegenConservation(t *testing.T) {
	// next <= max, granted <= toGrant, current + granted == next.
	for current := 0; current <= 6; current++ {
		for grant := 0; grant <= 8; grant++ {
			next, granted := ApplyRegen(current, 6, grant)
			assert.LessOrEqual(t, next, 6)
			assert.LessOrEqual(t, granted, grant)
			assert.Equal(t, next, current+granted)
		}
	}
}

func TestApplyRegenWithProCapacity(t *testing.T) {
	// An upgraded account carries the sentinel as max_orbs, so regen and
	// grants are effectively uncapped.
	max := models.MaxOrbsForTier(models.TierPro, 6)
	assert.Equal(t, models.ProOrbSentinel, max)

	next, granted := ApplyRegen(6, max, 3)
	assert.Equal(t, 9, next)
	assert.Equal(t, 3, granted)

	// A free account at the same balance stays capped.
	freeMax := models.MaxOrbsForTier(models.TierFree, 6)
	next, granted = ApplyRegen(6, freeMax, 3)
	assert.Equal(t, 6, next)
	assert.Equal(t, 0, granted)
}

func TestNextRegenETA(t *testing.T) {
	assert.Equal(t, 0, NextRegenETA(6, 6, 100, 3600))
	assert.Equal(t, 3600, NextRegenETA(3, 6, 0, 3600))
	assert.Equal(t, 3500, NextRegenETA(3, 6, 100, 3600))
	assert.Equal(t, 3500, NextRegenETA(3, 6, 3700, 3600))
}

func TestCanSpend(t *testing.T) {
	assert.True(t, CanSpend(3, 1, false))
	assert.True(t, CanSpend(3, 3, false))
	assert.False(t, CanSpend(0, 1, false))
	assert.False(t, CanSpend(2, 3, false))
	// Pro always spends, even at zero.
	assert.True(t, CanSpend(0, 1, true))
	assert.True(t, CanSpend(0, 9999, true))
}

func TestRegenPlanTwoHours(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	p := &models.Player{
		ID:          "p1",
		Tier:        models.TierFree,
		Orbs:        3,
		MaxOrbs:     6,
		LastRegenAt: base,
	}

	next, granted, eta := regenPlan(p, time.Hour, base.Add(2*time.Hour))
	assert.Equal(t, 5, next)
	assert.Equal(t, 2, granted)
	assert.Equal(t, 3600, eta)
}

func TestRegenPlanCapsAtMax(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	p := &models.Player{
		Orbs:        5,
		MaxOrbs:     6,
		LastRegenAt: base,
	}

	next, granted, eta := regenPlan(p, time.Hour, base.Add(10*time.Hour))
	assert.Equal(t, 6, next)
	assert.Equal(t, 1, granted)
	assert.Equal(t, 0, eta)
}

func TestRegenAnchorKeepsRemainder(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	p := &models.Player{
		Orbs:        1,
		MaxOrbs:     6,
		LastRegenAt: base,
	}

	// 90 minutes grants one orb; the anchor advances exactly one hour so
	// the remaining 30 minutes still count toward the next orb.
	anchor := regenAnchor(p, time.Hour, base.Add(90*time.Minute))
	assert.Equal(t, base.Add(time.Hour), anchor)

	// No full interval elapsed: anchor unchanged.
	anchor = regenAnchor(p, time.Hour, base.Add(30*time.Minute))
	assert.Equal(t, base, anchor)
}

func TestClampNonNegative(t *testing.T) {
	assert.Equal(t, 0, clampNonNegative(-4))
	assert.Equal(t, 7, clampNonNegative(7))
}
