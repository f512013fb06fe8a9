package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mysticarcade/backend/internal/models"
)

// Context keys for authentication
type contextKey string

const (
	// PlayerContextKey is the context key for the authenticated player
	PlayerContextKey contextKey = "player"
	// ClaimsContextKey is the context key for JWT claims
	ClaimsContextKey contextKey = "claims"
)

// Middleware holds dependencies for authentication middleware
type Middleware struct {
	jwtService *JWTService
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(jwtService *JWTService) *Middleware {
	return &Middleware{jwtService: jwtService}
}

// Authenticate middleware authenticates requests via JWT token
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player, claims, err := m.authenticate(r)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), PlayerContextKey, player)
		ctx = context.WithValue(ctx, ClaimsContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth middleware sets the player if authenticated but continues if not
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player, claims, err := m.authenticate(r)
		if err == nil && player != nil {
			ctx := context.WithValue(r.Context(), PlayerContextKey, player)
			ctx = context.WithValue(ctx, ClaimsContextKey, claims)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// RequireTier returns middleware that requires a minimum tier level
func (m *Middleware) RequireTier(requiredTier string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player := GetPlayer(r.Context())
			if player == nil {
				writeAuthError(w, ErrInvalidToken)
				return
			}

			// Check tier hierarchy
			requiredLevel := models.TierHierarchy(requiredTier)
			playerLevel := models.TierHierarchy(player.Tier)

			if playerLevel < requiredLevel {
				writeJSON(w, http.StatusForbidden, map[string]interface{}{
					"error":         "insufficient_tier",
					"message":       "Your subscription tier does not allow access to this resource",
					"required_tier": requiredTier,
					"current_tier":  player.Tier,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// authenticate attempts to authenticate a request from its bearer token
func (m *Middleware) authenticate(r *http.Request) (*models.Player, *Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil, ErrInvalidToken
	}

	// Extract bearer token
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, nil, ErrInvalidToken
	}

	claims, err := m.jwtService.Validate(parts[1])
	if err != nil {
		return nil, nil, err
	}

	// The token carries enough identity for the request path; handlers
	// that need fresh balances load the row themselves.
	player := &models.Player{
		ID:    claims.PlayerID,
		Email: claims.Email,
		Tier:  claims.Tier,
	}

	return player, claims, nil
}

// GetPlayer returns the authenticated player from context
func GetPlayer(ctx context.Context) *models.Player {
	player, ok := ctx.Value(PlayerContextKey).(*models.Player)
	if !ok {
		return nil
	}
	return player
}

// GetPlayerID returns the authenticated player ID from context
func GetPlayerID(ctx context.Context) string {
	player := GetPlayer(ctx)
	if player == nil {
		return ""
	}
	return player.ID
}

// GetClaims returns the JWT claims from context
func GetClaims(ctx context.Context) *Claims {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// writeAuthError writes an authentication error response
func writeAuthError(w http.ResponseWriter, err error) {
	message := "Authentication required"

	switch err {
	case ErrExpiredToken:
		message = "Token has expired"
	case ErrInvalidToken:
		message = "Invalid authentication token"
	case ErrTokenNotYetValid:
		message = "Token is not yet valid"
	}

	writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
		"error":   "unauthorized",
		"message": message,
	})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
