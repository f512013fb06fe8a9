package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mysticarcade/backend/internal/api/response"
	"github.com/mysticarcade/backend/internal/auth"
	"github.com/mysticarcade/backend/internal/ratelimit"
)

// RateLimit creates a middleware that admits requests through the
// token-bucket limiter for one operation class. The actor is the
// authenticated player when present, otherwise the client IP, so
// anonymous traffic shares a per-address bucket.
func RateLimit(limiter *ratelimit.Limiter, opClass string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := auth.GetPlayerID(r.Context())
			if actor == "" {
				actor = getClientIP(r)
			}

			res := limiter.CheckAndConsume(r.Context(), actor, opClass, 1)
			limit := limiter.Limit(opClass)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(int(limit.Capacity)))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(res.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetTime.Unix(), 10))

			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfterSec))
				response.TooManyRequests(w, retryMessage(res.RetryAfterSec))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// retryMessage humanizes a retry interval for the response body
func retryMessage(sec int) string {
	if sec <= 0 {
		return "Too many attempts. Please try again shortly."
	}
	if sec < 60 {
		return fmt.Sprintf("Too many attempts. Please wait %d seconds.", sec)
	}
	min := (sec + 59) / 60
	if min == 1 {
		return "Too many attempts. Please wait 1 minute."
	}
	return fmt.Sprintf("Too many attempts. Please wait %d minutes.", min)
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (for proxies)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Take the first IP in the chain
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return xri
	}

	// Fall back to RemoteAddr, which is in the form "IP:port"
	addr := r.RemoteAddr
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[:i]
		}
	}
	return addr
}
