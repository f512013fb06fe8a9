package handlers

import (
	"log"
	"net/http"

	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/events"
	"github.com/mysticarcade/backend/internal/orbs"
	"github.com/mysticarcade/backend/internal/vision"
)

// VisionHandler handles the rewarded-watch flow
type VisionHandler struct {
	vision  *vision.Service
	orbs    *orbs.Service
	emitter events.Emitter
	cfg     *config.Config
}

// NewVisionHandler creates a new vision handler
func NewVisionHandler(visionService *vision.Service, orbService *orbs.Service, emitter events.Emitter, cfg *config.Config) *VisionHandler {
	return &VisionHandler{
		vision:  visionService,
		orbs:    orbService,
		emitter: emitter,
		cfg:     cfg,
	}
}

// WatchResponse represents a completed rewarded watch
type WatchResponse struct {
	OrbsGranted  int          `json:"orbs_granted"`
	Orbs         *orbs.Status `json:"orbs"`
	WatchesToday int          `json:"watches_today"`
}

// GetEligibility reports whether the caller may start a rewarded watch.
// Works unauthenticated; the decision then carries the not-auth reason.
// GET /api/v1/vision
func (h *VisionHandler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	decision := h.vision.Eligibility(r.Context(), player)
	writeJSON(w, http.StatusOK, decision)
}

// CompleteWatch records a finished watch and credits the orb reward. The
// gate is re-checked here: client-side eligibility is advisory only.
// POST /api/v1/vision/complete
func (h *VisionHandler) CompleteWatch(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	decision := h.vision.Eligibility(r.Context(), player)
	if !decision.Eligible {
		writeVisionDenial(w, decision)
		return
	}

	count, err := h.vision.RecordWatch(r.Context(), player.ID)
	if err != nil {
		log.Printf("[vision] RecordWatch failed for %s: %v", player.ID, err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to record watch")
		return
	}

	status, granted, err := h.orbs.Grant(r.Context(), player.ID, h.cfg.WatchOrbReward)
	if err != nil {
		// The watch is recorded; the reward grant failing is a server
		// fault, not a gate denial.
		log.Printf("[vision] Reward grant failed for %s: %v", player.ID, err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to credit reward")
		return
	}

	events.Emit(h.emitter, events.Event{
		Name:    "vision_watch",
		ActorID: player.ID,
		Props:   map[string]interface{}{"orbs_granted": granted, "watches_today": count},
	})

	writeJSON(w, http.StatusOK, WatchResponse{
		OrbsGranted:  granted,
		Orbs:         status,
		WatchesToday: count,
	})
}

// writeVisionDenial maps a gate denial to its HTTP shape
func writeVisionDenial(w http.ResponseWriter, d vision.Decision) {
	switch d.Reason {
	case vision.ReasonNotAuth:
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
	case vision.ReasonUnavailable:
		writeError(w, http.StatusServiceUnavailable, "unavailable", "Rewarded watches are currently unavailable")
	case vision.ReasonPro:
		writeError(w, http.StatusConflict, "pro_account", "Pro accounts do not need rewarded watches")
	case vision.ReasonCooldown:
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":            "cooldown",
			"message":          "Please wait before watching again",
			"cooldown_eta_sec": d.CooldownEtaSec,
		})
	case vision.ReasonDailyLimit:
		writeError(w, http.StatusTooManyRequests, "daily_limit", "Daily watch limit reached")
	default:
		writeError(w, http.StatusForbidden, "ineligible", "Not eligible for a rewarded watch")
	}
}
