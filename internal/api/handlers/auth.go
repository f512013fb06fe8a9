package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/models"
	"github.com/mysticarcade/backend/internal/repository"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	playerRepo *repository.PlayerRepository
	jwtService *auth.JWTService
	cfg        *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(playerRepo *repository.PlayerRepository, jwtService *auth.JWTService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		playerRepo: playerRepo,
		jwtService: jwtService,
		cfg:        cfg,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	Token     string                `json:"token"`
	ExpiresIn int64                 `json:"expires_in"`
	Player    models.PlayerResponse `json:"player"`
}

// Register handles player registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if !isValidEmail(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid_email", "Invalid email address")
		return
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, "weak_password", err.Error())
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to process registration")
		return
	}

	// New accounts start with a full orb pool.
	now := time.Now().UTC()
	player := &models.Player{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: passwordHash,
		Tier:         models.TierFree,
		Orbs:         h.cfg.OrbMaxFree,
		MaxOrbs:      h.cfg.OrbMaxFree,
		LastRegenAt:  now,
		Level:        1,
	}

	if err := h.playerRepo.Create(r.Context(), player); err != nil {
		if err == repository.ErrPlayerExists {
			writeError(w, http.StatusConflict, "player_exists", "An account with this email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to create account")
		return
	}

	token, err := h.jwtService.Generate(player)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Token:     token,
		ExpiresIn: int64(h.jwtService.GetExpiration().Seconds()),
		Player:    player.ToResponse(),
	})
}

// Login handles player login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	player, err := h.playerRepo.GetByEmail(r.Context(), email)
	if err != nil {
		// Don't reveal whether the email exists
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	if !auth.CheckPassword(req.Password, player.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := h.jwtService.Generate(player)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Token:     token,
		ExpiresIn: int64(h.jwtService.GetExpiration().Seconds()),
		Player:    player.ToResponse(),
	})
}

// RefreshToken refreshes a JWT token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		writeError(w, http.StatusUnauthorized, "missing_token", "Authorization header required")
		return
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid authorization header format")
		return
	}

	newToken, err := h.jwtService.Refresh(parts[1])
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			writeError(w, http.StatusUnauthorized, "token_expired", "Token has expired and cannot be refreshed")
		case auth.ErrInvalidToken:
			writeError(w, http.StatusUnauthorized, "invalid_token", "Invalid token")
		default:
			writeError(w, http.StatusUnauthorized, "invalid_token", "Failed to refresh token")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":      newToken,
		"expires_in": int64(h.jwtService.GetExpiration().Seconds()),
	})
}

// GetCurrentPlayer returns the current authenticated player
// GET /api/v1/player/me
func (h *AuthHandler) GetCurrentPlayer(w http.ResponseWriter, r *http.Request) {
	player := auth.GetPlayer(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	// Token claims carry identity only; load the live row for balances.
	full, err := h.playerRepo.GetByID(r.Context(), player.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to fetch player data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"player": full.ToResponse(),
	})
}

// isValidEmail validates an email address format
func isValidEmail(email string) bool {
	// Simple email regex - not perfect but good enough for basic validation
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}
