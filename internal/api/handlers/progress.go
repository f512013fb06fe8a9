package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/progression"
	"github.com/mysticarcade/backend/internal/repository"
)

// ProgressHandler exposes the progression record
type ProgressHandler struct {
	playerRepo *repository.PlayerRepository
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(playerRepo *repository.PlayerRepository) *ProgressHandler {
	return &ProgressHandler{playerRepo: playerRepo}
}

// ProgressResponse represents the progression view of an account
type ProgressResponse struct {
	XP             int      `json:"xp"`
	Level          int      `json:"level"`
	NextLevelXP    int      `json:"next_level_xp"`
	Streak         int      `json:"streak"`
	Achievements   []string `json:"achievements"`
	CheckedInToday bool     `json:"checked_in_today"`
}

// GetProgress returns XP, level, streak and achievements.
// GET /api/v1/progress
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	full, err := h.playerRepo.GetByID(r.Context(), player.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Account not found")
			return
		}
		log.Printf("[progress] Load failed for %s: %v", player.ID, err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to read progression")
		return
	}

	achievements := full.Achievements
	if achievements == nil {
		achievements = []string{}
	}

	writeJSON(w, http.StatusOK, ProgressResponse{
		XP:             full.XP,
		Level:          full.Level,
		NextLevelXP:    progression.XPForLevel(full.Level + 1),
		Streak:         full.Streak,
		Achievements:   achievements,
		CheckedInToday: full.LastLoginAt != nil && progression.SameUTCDay(*full.LastLoginAt, time.Now().UTC()),
	})
}
