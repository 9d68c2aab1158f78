package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propman/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-that-is-long-enough-0123456789",
		TokenExpiration: time.Hour,
		Issuer:          "propman-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	token, err := service.GenerateToken(userID, "manager@example.com", "manager")
	require.NoError(t, err)
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)

	claims, err := service.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "manager@example.com", claims.Email)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, "propman-test", claims.Issuer)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	service := newTestJWTService()

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	service := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:          "a-completely-different-secret-9876543210",
		TokenExpiration: time.Hour,
		Issuer:          "propman-test",
	})

	token, err := other.GenerateToken(uuid.New(), "x@example.com", "")
	require.NoError(t, err)

	_, err = service.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:          "test-secret-that-is-long-enough-0123456789",
		TokenExpiration: -time.Minute,
		Issuer:          "propman-test",
	})

	token, err := service.GenerateToken(uuid.New(), "x@example.com", "")
	require.NoError(t, err)

	_, err = service.ValidateToken(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
