package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	jwtService := NewJWTService("test-secret")

	token, err := jwtService.GenerateNewToken("UC-abc12345", "farmer@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "UC-abc12345", claims.UserID)
	assert.Equal(t, "farmer@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.Id)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-one").GenerateNewToken("UC-abc12345", "farmer@example.com", false)
	require.NoError(t, err)

	_, err = NewJWTService("secret-two").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, err := NewJWTService("test-secret").VerifyToken("not.a.token")
	assert.Error(t, err)
}
