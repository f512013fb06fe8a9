package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mysticarcade/backend/internal/api/request"
	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/content"
	"github.com/mysticarcade/backend/internal/events"
	"github.com/mysticarcade/backend/internal/idempotency"
	"github.com/mysticarcade/backend/internal/models"
	"github.com/mysticarcade/backend/internal/orbs"
	"github.com/mysticarcade/backend/internal/progression"
	"github.com/mysticarcade/backend/internal/seed"
)

// Draw types accepted by the ritual endpoint
const (
	DrawTypeRune       = "rune"
	DrawTypeNumerology = "numerology"
	DrawTypeDeep       = "deep"
)

// idempotencyTTLMinutes is how long a cached draw result satisfies replays
const idempotencyTTLMinutes = 60

// deepSpreadSize is the number of runes in a deep reading spread
const deepSpreadSize = 3

// RitualHandler handles rune and numerology draws
type RitualHandler struct {
	orbs        *orbs.Service
	progression *progression.Service
	idem        *idempotency.Store
	catalog     *content.Catalog
	emitter     events.Emitter
	cfg         *config.Config
}

// NewRitualHandler creates a new ritual handler
func NewRitualHandler(
	orbService *orbs.Service,
	progressionService *progression.Service,
	idem *idempotency.Store,
	catalog *content.Catalog,
	emitter events.Emitter,
	cfg *config.Config,
) *RitualHandler {
	return &RitualHandler{
		orbs:        orbService,
		progression: progressionService,
		idem:        idem,
		catalog:     catalog,
		emitter:     emitter,
		cfg:         cfg,
	}
}

// DrawRequest represents a paid draw request
type DrawRequest struct {
	Type     string `json:"type"`
	Question string `json:"question,omitempty"`
}

// DrawResponse represents a completed draw
type DrawResponse struct {
	DrawID  string                `json:"draw_id"`
	Type    string                `json:"type"`
	Runes   []content.Rune        `json:"runes,omitempty"`
	Reading *content.Reading      `json:"reading,omitempty"`
	Orbs    *orbs.Status          `json:"orbs"`
	XP      *progression.XPResult `json:"xp,omitempty"`
}

// DailyRitual returns the shared free ritual of the day. The same date and
// kind always produce the same rune for every visitor.
// GET /api/v1/rituals/daily
func (h *RitualHandler) DailyRitual(w http.ResponseWriter, r *http.Request) {
	kind := request.GetQueryString(r, "kind", DrawTypeRune)
	if kind != DrawTypeRune && kind != DrawTypeNumerology {
		writeError(w, http.StatusBadRequest, "invalid_kind", "Unknown daily ritual kind")
		return
	}

	date := time.Now().UTC().Format("2006-01-02")
	s := seed.Compose(date, kind)

	if kind == DrawTypeNumerology {
		reading, err := h.catalog.PickReading(s)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to select reading")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"date":    date,
			"kind":    kind,
			"reading": reading,
		})
		return
	}

	rn, err := h.catalog.PickRune(s)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to select rune")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date": date,
		"kind": kind,
		"rune": rn,
	})
}

// Draw performs a paid draw: spends orbs, selects content deterministically
// from the draw ID and awards ritual XP. Supplying X-Idempotency-Key makes
// retries safe; a replayed key returns the original result without a second
// spend.
// POST /api/v1/rituals/draw
func (h *RitualHandler) Draw(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	var req DrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	cost := h.cfg.RitualOrbCost
	switch req.Type {
	case DrawTypeRune, DrawTypeNumerology:
	case DrawTypeDeep:
		cost = h.cfg.DeepReadingCost
	default:
		writeError(w, http.StatusBadRequest, "invalid_type", "Unknown draw type")
		return
	}

	idemKey := request.GetIdempotencyKey(r)
	drawID := idemKey
	if drawID == "" {
		drawID = uuid.New().String()
	}

	if idemKey != "" {
		check, err := h.idem.Check(r.Context(), player.ID, idemKey, idempotencyTTLMinutes)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_idempotency_key", "Idempotency key must be 1-100 characters of letters, digits, underscore or hyphen")
			return
		}
		if !check.IsNew {
			w.Header().Set("X-Idempotent-Replay", "true")
			writeRawJSON(w, http.StatusOK, check.Cached)
			return
		}
	}

	orbStatus, err := h.orbs.Spend(r.Context(), player.ID, cost)
	if err != nil {
		if errors.Is(err, orbs.ErrInsufficientOrbs) {
			writeError(w, http.StatusPaymentRequired, "insufficient_orbs", "Not enough orbs for this ritual")
			return
		}
		log.Printf("[rituals] Spend failed for %s: %v", player.ID, err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to complete draw")
		return
	}

	resp := DrawResponse{
		DrawID: drawID,
		Type:   req.Type,
		Orbs:   orbStatus,
	}

	base := seed.Compose(player.ID, drawID)
	switch req.Type {
	case DrawTypeNumerology:
		reading, err := h.catalog.PickReading(base)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to select reading")
			return
		}
		resp.Reading = &reading
	case DrawTypeDeep:
		resp.Runes = h.drawSpread(base, deepSpreadSize)
	default:
		rn, err := h.catalog.PickRune(base)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to select rune")
			return
		}
		resp.Runes = []content.Rune{rn}
	}

	xp, err := h.progression.AddXP(r.Context(), player.ID, h.cfg.RitualXP, models.XPReasonRitual)
	if err != nil {
		// The draw already happened; report it without the XP delta.
		log.Printf("[rituals] XP award failed for %s: %v", player.ID, err)
	} else {
		resp.XP = xp
	}

	events.Emit(h.emitter, events.Event{
		Name:    "ritual_draw",
		ActorID: player.ID,
		Props:   map[string]interface{}{"type": req.Type, "cost": cost, "draw_id": drawID},
	})

	if idemKey != "" {
		h.idem.Store(r.Context(), player.ID, idemKey, resp, idempotencyTTLMinutes)
	}

	writeJSON(w, http.StatusOK, resp)
}

// drawSpread picks n distinct runes by shuffling the full set with the
// draw's seed and taking the head of the permutation.
func (h *RitualHandler) drawSpread(base string, n int) []content.Rune {
	perm := seed.Shuffle(base, h.catalog.RuneCount())

	spread := make([]content.Rune, 0, n)
	for _, idx := range perm[:n] {
		spread = append(spread, h.catalog.RuneAt(idx))
	}
	return spread
}

// writeRawJSON writes pre-encoded JSON bytes as the response body
func writeRawJSON(w http.ResponseWriter, status int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(raw)
}
