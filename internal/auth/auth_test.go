package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mysticarcade/backend/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	player := &models.Player{ID: "p1", Email: "p1@example.com", Tier: models.TierPro}

	token, err := svc.Generate(player)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "p1", claims.PlayerID)
	assert.Equal(t, "p1@example.com", claims.Email)
	assert.Equal(t, models.TierPro, claims.Tier)
}

func TestJWTWrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", time.Hour)
	other := NewJWTService("secret-b", time.Hour)

	token, err := svc.Generate(&models.Player{ID: "p1"})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rsecret")
	require.NoError(t, err)
	assert.True(t, CheckPassword("Sup3rsecret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Sup3rsecret"))
	assert.ErrorIs(t, ValidatePasswordStrength("Ab1"), ErrPasswordTooShort)
	assert.ErrorIs(t, ValidatePasswordStrength("alllower1"), ErrPasswordNoUpper)
	assert.ErrorIs(t, ValidatePasswordStrength("ALLUPPER1"), ErrPasswordNoLower)
	assert.ErrorIs(t, ValidatePasswordStrength("NoDigitsHere"), ErrPasswordNoDigit)
	assert.ErrorIs(t, ValidatePasswordStrength("Password123"), ErrPasswordCommon)
}
