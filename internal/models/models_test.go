package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxOrbsForTier(t *testing.T) {
	// Pro capacity is the sentinel regardless of the free cap in force.
	assert.Equal(t, ProOrbSentinel, MaxOrbsForTier(TierPro, 6))
	assert.Equal(t, ProOrbSentinel, MaxOrbsForTier(TierPro, 12))
	assert.Equal(t, 9999, MaxOrbsForTier(TierPro, 6))

	assert.Equal(t, 6, MaxOrbsForTier(TierFree, 6))
	assert.Equal(t, 6, MaxOrbsForTier(TierAnonymous, 6))
	assert.Equal(t, 6, MaxOrbsForTier("unknown", 6))
}

func TestIsValidTier(t *testing.T) {
	assert.True(t, IsValidTier(TierFree))
	assert.True(t, IsValidTier(TierPro))
	// Anonymous is a request identity, never a stored account tier.
	assert.False(t, IsValidTier(TierAnonymous))
	assert.False(t, IsValidTier(""))
	assert.False(t, IsValidTier("premium"))
}

func TestIsPro(t *testing.T) {
	assert.True(t, (&Player{Tier: TierPro}).IsPro())
	assert.False(t, (&Player{Tier: TierFree}).IsPro())
}

func TestToResponseNilAchievements(t *testing.T) {
	resp := (&Player{Tier: TierFree}).ToResponse()
	assert.NotNil(t, resp.Achievements)
	assert.Empty(t, resp.Achievements)
}
