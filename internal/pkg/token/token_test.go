package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := Generate("507f1f77bcf86cd799439011", "moderator1", "admin", "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Validate(tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	require.Equal(t, "moderator1", claims.Username)
	require.Equal(t, "admin", claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	tok, err := Generate("id", "user", "admin", "secret-a", time.Hour)
	require.NoError(t, err)

	_, err = Validate(tok, "secret-b")
	require.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	tok, err := Generate("id", "user", "admin", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Validate(tok, "secret")
	require.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	_, err := Validate("not-a-token", "secret")
	require.Error(t, err)
}
