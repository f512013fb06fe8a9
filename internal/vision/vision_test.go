package vision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func baseInput() Input {
	return Input{
		Authenticated:   true,
		Pro:             false,
		Enabled:         true,
		CooldownMinutes: 30,
		DailyLimit:      5,
		WatchesToday:    0,
		Now:             now,
	}
}

func TestNotAuthenticated(t *testing.T) {
	in := baseInput()
	in.Authenticated = false
	d := Decide(in)
	assert.False(t, d.Eligible)
	assert.Equal(t, ReasonNotAuth, d.Reason)
}

func TestFeatureDisabled(t *testing.T) {
	in := baseInput()
	in.Enabled = false
	d := Decide(in)
	assert.False(t, d.Eligible)
	assert.Equal(t, ReasonUnavailable, d.Reason)
}

func TestProNeverNeedsWatches(t *testing.T) {
	in := baseInput()
	in.Pro = true
	// Even mid-cooldown and over the daily limit: pro wins first.
	last := now.Add(-time.Minute)
	in.LastWatchAt = &last
	in.WatchesToday = 99
	d := Decide(in)
	assert.False(t, d.Eligible)
	assert.Equal(t, ReasonPro, d.Reason)
}

func TestCooldown(t *testing.T) {
	in := baseInput()
	last := now.Add(-10 * time.Minute)
	in.LastWatchAt = &last
	d := Decide(in)
	assert.False(t, d.Eligible)
	assert.Equal(t, ReasonCooldown, d.Reason)
	assert.Equal(t, 1200, d.CooldownEtaSec)
}

func TestCooldownElapsed(t *testing.T) {
	in := baseInput()
	last := now.Add(-31 * time.Minute)
	in.LastWatchAt = &last
	d := Decide(in)
	assert.True(t, d.Eligible)
	assert.Equal(t, ReasonOK, d.Reason)
}

func TestDailyLimit(t *testing.T) {
	in := baseInput()
	in.WatchesToday = 5
	d := Decide(in)
	assert.False(t, d.Eligible)
	assert.Equal(t, ReasonDailyLimit, d.Reason)
	assert.Zero(t, d.RemainingToday)
}

func TestCooldownCheckedBeforeDailyLimit(t *testing.T) {
	in := baseInput()
	last := now.Add(-5 * time.Minute)
	in.LastWatchAt = &last
	in.WatchesToday = 5
	d := Decide(in)
	assert.Equal(t, ReasonCooldown, d.Reason)
}

func TestEligible(t *testing.T) {
	in := baseInput()
	in.WatchesToday = 2
	d := Decide(in)
	assert.True(t, d.Eligible)
	assert.Equal(t, ReasonOK, d.Reason)
	assert.Equal(t, 3, d.RemainingToday)
}

func TestFirstWatchOfTheDay(t *testing.T) {
	d := Decide(baseInput())
	assert.True(t, d.Eligible)
	assert.Equal(t, 5, d.RemainingToday)
}
