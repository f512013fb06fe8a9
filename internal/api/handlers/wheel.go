package handlers

import (
	"log"
	"net/http"

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

// WheelHandler handles prize wheel spins
type WheelHandler struct {
	orbs        *orbs.Service
	progression *progression.Service
	idem        *idempotency.Store
	catalog     *content.Catalog
	emitter     events.Emitter
	cfg         *config.Config
}

// NewWheelHandler creates a new wheel handler
func NewWheelHandler(
	orbService *orbs.Service,
	progressionService *progression.Service,
	idem *idempotency.Store,
	catalog *content.Catalog,
	emitter events.Emitter,
	cfg *config.Config,
) *WheelHandler {
	return &WheelHandler{
		orbs:        orbService,
		progression: progressionService,
		idem:        idem,
		catalog:     catalog,
		emitter:     emitter,
		cfg:         cfg,
	}
}

// SpinResponse represents a completed wheel spin
type SpinResponse struct {
	SpinID      string                `json:"spin_id"`
	Prize       content.Prize         `json:"prize"`
	OrbsGranted int                   `json:"orbs_granted"`
	Orbs        *orbs.Status          `json:"orbs"`
	XP          *progression.XPResult `json:"xp,omitempty"`
}

// Spin spins the prize wheel. The landed segment is a deterministic
// function of the spin ID, so a retried request with the same
// X-Idempotency-Key cannot land twice.
// POST /api/v1/wheel/spin
func (h *WheelHandler) Spin(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	idemKey := request.GetIdempotencyKey(r)
	spinID := idemKey
	if spinID == "" {
		spinID = uuid.New().String()
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

	prize := h.catalog.SpinPrize(seed.Compose("wheel", player.ID, spinID))

	resp := SpinResponse{
		SpinID: spinID,
		Prize:  prize,
	}

	if prize.Orbs > 0 {
		status, granted, err := h.orbs.Grant(r.Context(), player.ID, prize.Orbs)
		if err != nil {
			log.Printf("[wheel] Orb grant failed for %s: %v", player.ID, err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to credit prize")
			return
		}
		resp.Orbs = status
		resp.OrbsGranted = granted
	} else {
		status, err := h.orbs.Status(r.Context(), player.ID)
		if err != nil {
			log.Printf("[wheel] Status read failed for %s: %v", player.ID, err)
		} else {
			resp.Orbs = status
		}
	}

	xpAmount := h.cfg.WheelXP + prize.XP
	if xpAmount > 0 {
		xp, err := h.progression.AddXP(r.Context(), player.ID, xpAmount, models.XPReasonWheel)
		if err != nil {
			log.Printf("[wheel] XP award failed for %s: %v", player.ID, err)
		} else {
			resp.XP = xp
		}
	}

	events.Emit(h.emitter, events.Event{
		Name:    "wheel_spin",
		ActorID: player.ID,
		Props:   map[string]interface{}{"prize": prize.Key, "spin_id": spinID},
	})

	if idemKey != "" {
		h.idem.Store(r.Context(), player.ID, idemKey, resp, idempotencyTTLMinutes)
	}

	writeJSON(w, http.StatusOK, resp)
}
