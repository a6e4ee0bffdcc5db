package auth_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/relaycrm/pkg/auth"
	"github.com/Abraxas-365/relaycrm/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *auth.User {
	return &auth.User{
		ID:    kernel.NewUserID("user-1"),
		Email: "ada@relaycrm.dev",
		Name:  "Ada",
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := auth.NewJWTService("test-secret", time.Hour, "relaycrm-test")

	token, expiresAt, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, kernel.NewUserID("user-1"), claims.UserID)
	assert.Equal(t, "ada@relaycrm.dev", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewJWTService("secret-a", time.Hour, "relaycrm-test")
	verifier := auth.NewJWTService("secret-b", time.Hour, "relaycrm-test")

	token, _, err := issuer.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsRefreshTokenAsAccess(t *testing.T) {
	svc := auth.NewJWTService("test-secret", time.Hour, "relaycrm-test")

	refresh, err := svc.GenerateRefreshToken(kernel.NewUserID("user-1"))
	require.NoError(t, err)

	// The audiences differ, so a refresh token must not pass as access.
	_, err = svc.ValidateAccessToken(refresh)
	require.Error(t, err)

	userID, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, kernel.NewUserID("user-1"), userID)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := auth.NewJWTService("test-secret", -time.Minute, "relaycrm-test")

	token, _, err := svc.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	require.Error(t, err)
}
