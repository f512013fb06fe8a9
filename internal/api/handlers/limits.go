package handlers

import (
	"net/http"
	"time"

	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/ratelimit"
)

// LimitsHandler reports rate-limit standing per operation class
type LimitsHandler struct {
	limiter *ratelimit.Limiter
	classes []string
}

// NewLimitsHandler creates a new limits handler over the known classes
func NewLimitsHandler(limiter *ratelimit.Limiter) *LimitsHandler {
	return &LimitsHandler{
		limiter: limiter,
		classes: []string{
			config.OpClassRitual,
			config.OpClassVision,
			config.OpClassWheel,
			config.OpClassCheckin,
			config.OpClassAuth,
		},
	}
}

// ClassStanding is one operation class's bucket state for the caller
type ClassStanding struct {
	Capacity      float64 `json:"capacity"`
	Remaining     float64 `json:"remaining"`
	ResetTime     string  `json:"reset_time"`
	RetryAfterSec int     `json:"retry_after_sec,omitempty"`
}

// GetLimits returns the caller's current bucket standing for every class.
// Reads are free: no tokens are consumed.
// GET /api/v1/limits
func (h *LimitsHandler) GetLimits(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	standings := make(map[string]ClassStanding, len(h.classes))
	for _, class := range h.classes {
		res := h.limiter.Status(r.Context(), player.ID, class)
		standings[class] = ClassStanding{
			Capacity:      h.limiter.Limit(class).Capacity,
			Remaining:     res.Remaining,
			ResetTime:     res.ResetTime.UTC().Format(time.RFC3339),
			RetryAfterSec: res.RetryAfterSec,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"limits": standings,
	})
}
