package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/events"
	"github.com/mysticarcade/backend/internal/progression"
)

// CheckinHandler handles the daily check-in
type CheckinHandler struct {
	progression *progression.Service
	emitter     events.Emitter
}

// NewCheckinHandler creates a new check-in handler
func NewCheckinHandler(progressionService *progression.Service, emitter events.Emitter) *CheckinHandler {
	return &CheckinHandler{
		progression: progressionService,
		emitter:     emitter,
	}
}

// Checkin applies the daily check-in. Calling it twice on the same UTC day
// is a no-op that returns the current streak.
// POST /api/v1/checkin
func (h *CheckinHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	result, err := h.progression.UpdateDailyStreak(r.Context(), player.ID)
	if err != nil {
		if errors.Is(err, progression.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Account not found")
			return
		}
		log.Printf("[checkin] Failed for %s: %v", player.ID, err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to check in")
		return
	}

	if result.AwardedXP > 0 {
		events.Emit(h.emitter, events.Event{
			Name:    "daily_checkin",
			ActorID: player.ID,
			Props:   map[string]interface{}{"streak": result.Streak},
		})
	}

	writeJSON(w, http.StatusOK, result)
}
