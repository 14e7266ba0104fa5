package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, password string) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("secret", 1, string(hash))
}

func TestLoginIssuesValidToken(t *testing.T) {
	auth := newTestAuth(t, "hunter2")

	signed, err := auth.Login("hunter2")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newTestAuth(t, "hunter2")

	_, err := auth.Login("letmein")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithoutHash(t *testing.T) {
	auth := NewAuthService("secret", 1, "")

	_, err := auth.Login("")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabled(t *testing.T) {
	auth := NewAuthService("", 1, "")

	assert.False(t, auth.Enabled())
	_, err := auth.Login("anything")
	assert.ErrorIs(t, err, ErrAuthDisabled)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	auth := NewAuthService("", 1, "")

	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.NoError(t, auth.ComparePasswords(hash, "hunter2"))
	assert.Error(t, auth.ComparePasswords(hash, "hunter3"))
}
