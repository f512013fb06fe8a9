package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetryMessage(t *testing.T) {
	assert.Equal(t, "Too many attempts. Please try again shortly.", retryMessage(0))
	assert.Equal(t, "Too many attempts. Please wait 5 seconds.", retryMessage(5))
	assert.Equal(t, "Too many attempts. Please wait 1 minute.", retryMessage(60))
	assert.Equal(t, "Too many attempts. Please wait 2 minutes.", retryMessage(61))
	assert.Equal(t, "Too many attempts. Please wait 3 minutes.", retryMessage(150))
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	assert.Equal(t, "10.0.0.1", getClientIP(r))

	r.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "10.0.0.2", getClientIP(r))

	r.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	assert.Equal(t, "10.0.0.3", getClientIP(r))
}
