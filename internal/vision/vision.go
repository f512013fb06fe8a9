// Package vision gates the rewarded-watch flow: a policy over Pro status,
// cooldown since the last watch and a daily ceiling. The decision itself is
// pure; per-actor watch state lives in Redis via Service.
package vision

import (
	"time"
)

// Reason explains a gate decision
type Reason string

// Gate decision reasons, in the order the checks run
const (
	ReasonNotAuth     Reason = "not-auth"
	ReasonUnavailable Reason = "unavailable"
	ReasonPro         Reason = "pro"
	ReasonCooldown    Reason = "cooldown"
	ReasonDailyLimit  Reason = "daily-limit"
	ReasonOK          Reason = "ok"
)

// Input is the full state the gate decides over
type Input struct {
	Authenticated   bool
	Pro             bool
	Enabled         bool
	LastWatchAt     *time.Time
	CooldownMinutes int
	DailyLimit      int
	WatchesToday    int
	Now             time.Time
}

// Decision is the gate outcome. Eligible is true only for ReasonOK.
type Decision struct {
	Eligible       bool   `json:"eligible"`
	Reason         Reason `json:"reason"`
	CooldownEtaSec int    `json:"cooldown_eta_sec,omitempty"`
	RemainingToday int    `json:"remaining_today"`
}

// Decide evaluates the gate. The check order is a contract: auth, then
// feature flag, then Pro, then cooldown, then daily limit. Each check is a
// hard gate on the next.
func Decide(in Input) Decision {
	if !in.Authenticated {
		return Decision{Eligible: false, Reason: ReasonNotAuth}
	}

	if !in.Enabled {
		return Decision{Eligible: false, Reason: ReasonUnavailable}
	}

	if in.Pro {
		// Pro accounts never need rewarded watches.
		return Decision{Eligible: false, Reason: ReasonPro}
	}

	if in.LastWatchAt != nil {
		cooldown := time.Duration(in.CooldownMinutes) * time.Minute
		since := in.Now.Sub(*in.LastWatchAt)
		if since < cooldown {
			return Decision{
				Eligible:       false,
				Reason:         ReasonCooldown,
				CooldownEtaSec: int((cooldown - since).Seconds()),
				RemainingToday: remaining(in),
			}
		}
	}

	if in.WatchesToday >= in.DailyLimit {
		return Decision{Eligible: false, Reason: ReasonDailyLimit, RemainingToday: 0}
	}

	return Decision{Eligible: true, Reason: ReasonOK, RemainingToday: remaining(in)}
}

func remaining(in Input) int {
	r := in.DailyLimit - in.WatchesToday
	if r < 0 {
		return 0
	}
	return r
}
