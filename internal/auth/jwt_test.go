package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("u-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestValidateToken_Invalid(t *testing.T) {
	_, err := ValidateToken("invalid.token")
	require.Error(t, err)
}

func TestConfigure_RotatesSecret(t *testing.T) {
	token, err := GenerateToken("u-1", "alice")
	require.NoError(t, err)

	Configure("a-completely-different-secret", jwtIssuer, jwtAudience)
	t.Cleanup(func() {
		Configure("development-insecure-secret-change-me", "workmode-api", "workmode-clients")
	})

	// Tokens signed under the old secret stop validating
	_, err = ValidateToken(token)
	require.Error(t, err)

	fresh, err := GenerateToken("u-1", "alice")
	require.NoError(t, err)
	_, err = ValidateToken(fresh)
	require.NoError(t, err)
}
