package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akukesepian/backend/internal/models"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"
	userID := models.UserID("507f1f77bcf86cd799439011")

	token, err := GenerateAccessToken(secret, userID, true, time.Hour)
	require.NoError(t, err)

	claims, err := ParseAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.True(t, claims.IsAdmin)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("secret-a", "507f1f77bcf86cd799439011", false, time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "secret-b")
	assert.Error(t, err)
}

func TestParseAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken("secret", "507f1f77bcf86cd799439011", false, -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "secret")
	assert.Error(t, err)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("not.a.jwt", "secret")
	assert.Error(t, err)
}

func TestNewOneTimeTokenUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := NewOneTimeToken()
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}
