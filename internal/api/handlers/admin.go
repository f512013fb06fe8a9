package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/mysticarcade/backend/internal/api/request"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/events"
	"github.com/mysticarcade/backend/internal/models"
	"github.com/mysticarcade/backend/internal/repository"
)

// AdminHandler handles operator-only account management. Every route
// requires the shared admin token; with no token configured the whole
// surface is disabled.
type AdminHandler struct {
	playerRepo *repository.PlayerRepository
	emitter    events.Emitter
	cfg        *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(playerRepo *repository.PlayerRepository, emitter events.Emitter, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		playerRepo: playerRepo,
		emitter:    emitter,
		cfg:        cfg,
	}
}

// UpdateTierRequest is the tier-change payload
type UpdateTierRequest struct {
	Tier string `json:"tier"`
}

// UpdateTier sets a player's tier and the matching orb capacity: Pro
// accounts get the unlimited sentinel, downgrades restore the free cap.
// PUT /api/v1/admin/players/{id}/tier
func (h *AdminHandler) UpdateTier(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	playerID := request.GetURLParam(r, "id")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Player ID is required")
		return
	}

	var req UpdateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if !models.IsValidTier(req.Tier) {
		writeError(w, http.StatusBadRequest, "invalid_tier", "Tier must be free or pro")
		return
	}

	maxOrbs := models.MaxOrbsForTier(req.Tier, h.cfg.OrbMaxFree)
	if err := h.playerRepo.UpdateTier(r.Context(), playerID, req.Tier, maxOrbs); err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Player not found")
			return
		}
		log.Printf("[admin] Tier update failed for %s: %v", playerID, err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to update tier")
		return
	}

	log.Printf("[admin] Player %s set to tier %s (max_orbs=%d)", playerID, req.Tier, maxOrbs)
	events.Emit(h.emitter, events.Event{
		Name:    "tier_changed",
		ActorID: playerID,
		Props:   map[string]interface{}{"tier": req.Tier, "max_orbs": maxOrbs},
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       playerID,
		"tier":     req.Tier,
		"max_orbs": maxOrbs,
	})
}

// authorize checks the X-Admin-Token header against the configured token.
// Writes the error response itself and returns false on failure.
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if h.cfg.AdminToken == "" {
		writeError(w, http.StatusServiceUnavailable, "admin_disabled", "Admin surface is not configured")
		return false
	}
	token := r.Header.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.AdminToken)) != 1 {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid admin token")
		return false
	}
	return true
}
