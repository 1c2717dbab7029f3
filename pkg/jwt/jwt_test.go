package jwt

import (
	"testing"
	"time"

	"medivuno-api/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          secret,
		AccessExpiry:    15 * time.Minute,
		RefreshExpiry:   7 * 24 * time.Hour,
		ChallengeExpiry: 5 * time.Minute,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	service := newTestService("secret")
	userID := uuid.New()

	token, tokenID, err := service.GenerateAccessToken(userID, "jo@example.com", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, 3, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestTokenTypesAreDistinct(t *testing.T) {
	service := newTestService("secret")
	userID := uuid.New()

	refresh, _, err := service.GenerateRefreshToken(userID, "jo@example.com", 3)
	require.NoError(t, err)
	challenge, _, err := service.GenerateChallengeToken(userID, "jo@example.com", 3)
	require.NoError(t, err)

	refreshClaims, err := service.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, refreshClaims.TokenType)

	challengeClaims, err := service.ValidateToken(challenge)
	require.NoError(t, err)
	assert.Equal(t, ChallengeToken, challengeClaims.TokenType)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService("secret-a").GenerateAccessToken(uuid.New(), "jo@example.com", 3)
	require.NoError(t, err)

	_, err = newTestService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	service := newTestService("secret")
	token, _, err := service.GenerateAccessToken(uuid.New(), "jo@example.com", 3)
	require.NoError(t, err)

	_, err = service.ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = service.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:       "secret",
		AccessExpiry: -time.Minute,
	})

	token, _, err := service.GenerateAccessToken(uuid.New(), "jo@example.com", 3)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}
