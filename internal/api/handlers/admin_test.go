package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/mysticarcade/backend/internal/config"
	"github.com/mysticarcade/backend/internal/events"
)

func adminRequest(t *testing.T, token, playerID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/players/"+playerID+"/tier", strings.NewReader(body))
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", playerID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminUpdateTierDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(nil, events.NewLogEmitter(), &config.Config{OrbMaxFree: 6})

	rec := httptest.NewRecorder()
	h.UpdateTier(rec, adminRequest(t, "anything", "p1", `{"tier":"pro"}`))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAdminUpdateTierRejectsBadToken(t *testing.T) {
	h := NewAdminHandler(nil, events.NewLogEmitter(), &config.Config{AdminToken: "secret", OrbMaxFree: 6})

	rec := httptest.NewRecorder()
	h.UpdateTier(rec, adminRequest(t, "wrong", "p1", `{"tier":"pro"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateTier(rec, adminRequest(t, "", "p1", `{"tier":"pro"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminUpdateTierValidation(t *testing.T) {
	h := NewAdminHandler(nil, events.NewLogEmitter(), &config.Config{AdminToken: "secret", OrbMaxFree: 6})

	rec := httptest.NewRecorder()
	h.UpdateTier(rec, adminRequest(t, "secret", "p1", `{"tier":"premium"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_tier")

	rec = httptest.NewRecorder()
	h.UpdateTier(rec, adminRequest(t, "secret", "p1", `not-json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.UpdateTier(rec, adminRequest(t, "secret", "", `{"tier":"pro"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
