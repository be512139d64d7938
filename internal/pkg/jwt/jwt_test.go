package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("admin", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", decoded.Subject())

	isAdmin, ok := decoded.Get("is_admin")
	require.True(t, ok)
	assert.Equal(t, true, isAdmin)

	tokenType, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "soon")

	_, _, err := svc.GenerateAccessToken("admin", true)
	assert.Error(t, err)
}
