package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, uint64(42), userID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(42, "secret")
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", "secret")
	require.Error(t, err)
}
