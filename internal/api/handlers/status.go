package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/mysticarcade/backend/internal/api/response"
	"github.com/mysticarcade/backend/internal/cache"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/database"
)

// StatusHandler handles status API endpoints
type StatusHandler struct {
	db        *database.DB
	cache     *cache.Redis
	cfg       *config.Config
	startTime time.Time
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *database.DB, cache *cache.Redis, cfg *config.Config) *StatusHandler {
	return &StatusHandler{
		db:        db,
		cache:     cache,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// ServiceStatusResponse represents service health
type ServiceStatusResponse struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// EconomyStatusResponse represents the live economy configuration
type EconomyStatusResponse struct {
	OrbRegenInterval string `json:"orb_regen_interval"`
	OrbMaxFree       int    `json:"orb_max_free"`
	RitualOrbCost    int    `json:"ritual_orb_cost"`
	DeepReadingCost  int    `json:"deep_reading_cost"`
	WatchToEarn      bool   `json:"watch_to_earn"`
	WatchDailyLimit  int    `json:"watch_daily_limit"`
}

// SystemStatusResponse represents the full system status
type SystemStatusResponse struct {
	Status      string                `json:"status"`
	Uptime      string                `json:"uptime"`
	Environment string                `json:"environment"`
	Timestamp   string                `json:"timestamp"`
	Services    ServiceStatusResponse `json:"services"`
	Economy     EconomyStatusResponse `json:"economy"`
}

// GetStatus handles GET /api/v1/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	services := ServiceStatusResponse{
		Database: "healthy",
		Redis:    "healthy",
	}
	overallStatus := "healthy"

	if err := h.db.Ping(ctx); err != nil {
		services.Database = "unhealthy"
		overallStatus = "degraded"
	}

	if err := h.cache.Health(ctx); err != nil {
		services.Redis = "unhealthy"
		overallStatus = "degraded"
	}

	resp := SystemStatusResponse{
		Status:      overallStatus,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Environment: h.cfg.Env,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Services:    services,
		Economy: EconomyStatusResponse{
			OrbRegenInterval: h.cfg.OrbRegenInterval.String(),
			OrbMaxFree:       h.cfg.OrbMaxFree,
			RitualOrbCost:    h.cfg.RitualOrbCost,
			DeepReadingCost:  h.cfg.DeepReadingCost,
			WatchToEarn:      h.cfg.WatchToEarnEnabled,
			WatchDailyLimit:  h.cfg.WatchDailyLimit,
		},
	}

	response.Success(w, resp)
}
