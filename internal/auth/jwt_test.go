package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, []uint64{1, 2}, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)

	userID, exp, err := Parse("secret", tok.Value)
	require.NoError(t, err)
	require.Equal(t, uint64(42), userID)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, nil, 60)
	require.NoError(t, err)

	_, _, err = Parse("other-secret", tok.Value)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, nil, -1)
	require.NoError(t, err)

	_, _, err = Parse("secret", tok.Value)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, _, err := Parse("secret", "not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenUsesOwnSecret(t *testing.T) {
	refresh, err := NewRefreshToken("refresh-secret", 7, 7)
	require.NoError(t, err)

	// A refresh token must not validate under the access secret.
	_, _, err = Parse("access-secret", refresh.Value)
	require.ErrorIs(t, err, ErrInvalidToken)

	userID, _, err := Parse("refresh-secret", refresh.Value)
	require.NoError(t, err)
	require.Equal(t, uint64(7), userID)
}
