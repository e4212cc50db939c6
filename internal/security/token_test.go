package security_test

import (
	"testing"
	"time"

	"points-backend/internal/security"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-characters"

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := security.NewTokenManager(testSecret)

	token, err := manager.GenerateAccessToken("user-uuid-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid-1", claims.UserID)
	assert.Equal(t, security.TokenTypeAccess, claims.Type)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	manager := security.NewTokenManager(testSecret)
	other := security.NewTokenManager("another-secret-key-also-32-chars-min")

	token, err := manager.GenerateAccessToken("user-uuid-1")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	manager := security.NewTokenManager(testSecret)

	claims := security.UserClaims{
		UserID: "user-uuid-1",
		Type:   security.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-uuid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, security.ErrExpiredToken)
}

func TestTokenManager_RejectsWrongTokenType(t *testing.T) {
	manager := security.NewTokenManager(testSecret)

	claims := security.UserClaims{
		UserID: "user-uuid-1",
		Type:   security.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-uuid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, security.ErrWrongTokenType)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := security.NewTokenManager(testSecret)
	_, err := manager.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
