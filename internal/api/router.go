package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/mysticarcade/backend/internal/api/handlers"
	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/cache"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/content"
	"github.com/mysticarcade/backend/internal/database"
	"github.com/mysticarcade/backend/internal/events"
	"github.com/mysticarcade/backend/internal/idempotency"
	"github.com/mysticarcade/backend/internal/middleware"
	"github.com/mysticarcade/backend/internal/orbs"
	"github.com/mysticarcade/backend/internal/progression"
	"github.com/mysticarcade/backend/internal/ratelimit"
	"github.com/mysticarcade/backend/internal/repository"
	"github.com/mysticarcade/backend/internal/vision"
)

// NewRouter creates and configures the main router
func NewRouter(cfg *config.Config, db *database.DB, redisCache *cache.Redis, catalog *content.Catalog) *chi.Mux {
	r := chi.NewRouter()

	// Repositories
	playerRepo := repository.NewPlayerRepository(db)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	authMiddleware := auth.NewMiddleware(jwtService)

	// Shared engine services
	limiter := ratelimit.NewLimiter(ratelimit.NewRedisStore(redisCache), cfg.RateLimits())
	idemStore := idempotency.NewStore(idempotency.NewRedisKV(redisCache))
	orbService := orbs.NewService(db, playerRepo, cfg.OrbRegenInterval)
	progressionService := progression.NewService(db, playerRepo, cfg.ProXPMultiplier, cfg.CheckinXP)
	visionService := vision.NewService(redisCache, cfg.Vision())
	emitter := events.NewLogEmitter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Timing)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORSWithOrigins(cfg.CORSOrigins))
	r.Use(authMiddleware.OptionalAuth) // resolve identity early so rate limiting keys per player

	// Handlers
	healthHandler := handlers.NewHealthChecker(db, redisCache)
	authHandler := handlers.NewAuthHandler(playerRepo, jwtService, cfg)
	ritualHandler := handlers.NewRitualHandler(orbService, progressionService, idemStore, catalog, emitter, cfg)
	wheelHandler := handlers.NewWheelHandler(orbService, progressionService, idemStore, catalog, emitter, cfg)
	checkinHandler := handlers.NewCheckinHandler(progressionService, emitter)
	orbsHandler := handlers.NewOrbsHandler(orbService)
	progressHandler := handlers.NewProgressHandler(playerRepo)
	visionHandler := handlers.NewVisionHandler(visionService, orbService, emitter, cfg)
	limitsHandler := handlers.NewLimitsHandler(limiter)
	adminHandler := handlers.NewAdminHandler(playerRepo, emitter, cfg)
	statusHandler := handlers.NewStatusHandler(db, redisCache, cfg)

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", handlers.LivenessProbe)
	r.Get("/health/ready", healthHandler.ReadinessProbe)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, config.OpClassAuth))
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.RefreshToken)
		})

		// Public daily ritual and vision eligibility
		r.Get("/rituals/daily", ritualHandler.DailyRitual)
		r.Get("/vision", visionHandler.GetEligibility)

		// Status endpoint
		r.Get("/status", statusHandler.GetStatus)

		// Protected endpoints (require authentication)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/player/me", authHandler.GetCurrentPlayer)
			r.Get("/orbs", orbsHandler.GetOrbs)
			r.Get("/progress", progressHandler.GetProgress)
			r.Get("/limits", limitsHandler.GetLimits)

			r.With(middleware.RateLimit(limiter, config.OpClassRitual)).
				Post("/rituals/draw", ritualHandler.Draw)
			r.With(middleware.RateLimit(limiter, config.OpClassWheel)).
				Post("/wheel/spin", wheelHandler.Spin)
			r.With(middleware.RateLimit(limiter, config.OpClassCheckin)).
				Post("/checkin", checkinHandler.Checkin)
			r.With(middleware.RateLimit(limiter, config.OpClassVision)).
				Post("/vision/complete", visionHandler.CompleteWatch)
		})

		// Operator endpoints (token-gated inside the handler)
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, config.OpClassAdmin))
			r.Put("/players/{id}/tier", adminHandler.UpdateTier)
		})
	})

	return r
}
