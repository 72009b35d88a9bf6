package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundtrip(t *testing.T) {
	tok, err := Issue("test-secret", 42, "OWNER", 1)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, float64(42), claims["sub"])
	require.Equal(t, "OWNER", claims["role"])
}

func TestParseAuth_WrongSecret(t *testing.T) {
	tok, err := Issue("test-secret", 42, "OWNER", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "other-secret")
	require.Error(t, err)
}

func TestParseAuth_MissingHeader(t *testing.T) {
	_, err := ParseAuth("", "test-secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "test-secret")
	require.Error(t, err)
}
