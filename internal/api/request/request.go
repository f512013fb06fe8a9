package request

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetQueryString returns a string query parameter or the default value
func GetQueryString(r *http.Request, key string, defaultVal string) string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// GetURLParam returns a URL parameter from chi router
func GetURLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// GetIdempotencyKey returns the X-Idempotency-Key header, if any
func GetIdempotencyKey(r *http.Request) string {
	return r.Header.Get("X-Idempotency-Key")
}
