package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh/silvershop/internal/auth"
	"github.com/ngocminh/silvershop/internal/model"
)

type fakeRevocations struct {
	revoked map[string]bool
	err     error
}

func (f *fakeRevocations) Contains(_ context.Context, token string) (bool, error) {
	return f.revoked[token], f.err
}

type fakeUsers struct {
	users map[uint64]model.User
}

func (f *fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, errors.New("not found")
	}
	return u, nil
}

const testSecret = "test-secret"

func runGate(t *testing.T, authz string, revoked *fakeRevocations, users *fakeUsers) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	gate := JWTAuth(testSecret, revoked, users)
	err := gate(func(c echo.Context) error {
		return c.String(http.StatusOK, "through")
	})(c)
	require.NoError(t, err)
	return rec, c
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := runGate(t, "", &fakeRevocations{}, &fakeUsers{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRevokedBeforeParse(t *testing.T) {
	// A revoked token must be rejected even when it would not parse:
	// revocation wins and the answer is 401, not 400.
	revoked := &fakeRevocations{revoked: map[string]bool{"dead-token": true}}
	rec, _ := runGate(t, "Bearer dead-token", revoked, &fakeUsers{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec, _ := runGate(t, "Bearer not-a-jwt", &fakeRevocations{}, &fakeUsers{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJWTAuthUnknownUser(t *testing.T) {
	tok, err := auth.NewAccessToken(testSecret, 99, nil, 5)
	require.NoError(t, err)

	rec, _ := runGate(t, "Bearer "+tok.Value, &fakeRevocations{}, &fakeUsers{users: map[uint64]model.User{}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthPassesAndSetsContext(t *testing.T) {
	tok, err := auth.NewAccessToken(testSecret, 7, []uint64{1}, 5)
	require.NoError(t, err)

	users := &fakeUsers{users: map[uint64]model.User{7: {ID: 7, Username: "minh"}}}
	rec, c := runGate(t, "Bearer "+tok.Value, &fakeRevocations{}, users)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, uint64(7), c.Get(CtxUserID))
	require.Equal(t, tok.Value, c.Get(CtxToken))
	u, ok := c.Get(CtxUser).(model.User)
	require.True(t, ok)
	require.Equal(t, "minh", u.Username)
}

func TestJWTAuthRevocationCheckError(t *testing.T) {
	tok, err := auth.NewAccessToken(testSecret, 7, nil, 5)
	require.NoError(t, err)

	revoked := &fakeRevocations{err: errors.New("redis down")}
	rec, _ := runGate(t, "Bearer "+tok.Value, revoked, &fakeUsers{})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
