package auth

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planets-api/internal/shared/config"
)

func testAuthConfig(expiration time.Duration) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       strings.Repeat("k", 32),
		TokenExpiration: expiration,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	service := NewService(testAuthConfig(time.Hour), slog.Default())

	token, err := service.GenerateToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice", claims.Subject)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	service := NewService(testAuthConfig(-time.Minute), slog.Default())

	token, err := service.GenerateToken("alice")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenFromDifferentSecretIsRejected(t *testing.T) {
	service := NewService(testAuthConfig(time.Hour), slog.Default())
	other := NewService(config.AuthConfig{
		JWTSecret:       strings.Repeat("x", 32),
		TokenExpiration: time.Hour,
	}, slog.Default())

	token, err := other.GenerateToken("alice")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	service := NewService(testAuthConfig(time.Hour), slog.Default())

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
}
