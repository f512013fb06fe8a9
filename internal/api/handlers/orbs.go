package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/orbs"
	"github.com/mysticarcade/backend/internal/repository"
)

// OrbsHandler exposes the orb balance
type OrbsHandler struct {
	orbs *orbs.Service
}

// NewOrbsHandler creates a new orbs handler
func NewOrbsHandler(orbService *orbs.Service) *OrbsHandler {
	return &OrbsHandler{orbs: orbService}
}

// GetOrbs returns the current orb pool, applying any pending regeneration.
// GET /api/v1/orbs
func (h *OrbsHandler) GetOrbs(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	status, err := h.orbs.Status(r.Context(), player.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Account not found")
			return
		}
		log.Printf("[orbs] Status failed for %s: %v", player.ID, err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to read orb balance")
		return
	}

	writeJSON(w, http.StatusOK, status)
}
