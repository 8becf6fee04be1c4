package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pw", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pw", hash)

	require.True(t, VerifyPassword(hash, "s3cret-pw"))
	require.False(t, VerifyPassword(hash, "wrong"))
	require.False(t, VerifyPassword("", "s3cret-pw"))
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(32)
	require.NoError(t, err)
	require.Len(t, a, 64)

	b, err := RandomHex(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
