package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeGrants struct {
	roles map[uint64][]string
	perms map[uint64][]string
	err   error
}

func (f *fakeGrants) RoleNamesForUser(_ context.Context, userID uint64) ([]string, error) {
	return f.roles[userID], f.err
}

func (f *fakeGrants) PermissionNamesForUser(_ context.Context, userID uint64) ([]string, error) {
	return f.perms[userID], f.err
}

func runPolicy(t *testing.T, grants GrantSource, p Policy, userID any) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set(CtxUserID, userID)
	}

	err := RequirePolicy(grants, p)(func(c echo.Context) error {
		return c.String(http.StatusOK, "through")
	})(c)
	require.NoError(t, err)
	return rec
}

func TestRequirePolicyNoUser(t *testing.T) {
	rec := runPolicy(t, &fakeGrants{}, Policy{Role: "ADMIN"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePolicyRoleGranted(t *testing.T) {
	grants := &fakeGrants{roles: map[uint64][]string{1: {"USER", "ADMIN"}}}
	rec := runPolicy(t, grants, Policy{Role: "ADMIN"}, uint64(1))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePolicyRoleDenied(t *testing.T) {
	grants := &fakeGrants{roles: map[uint64][]string{1: {"USER"}}}
	rec := runPolicy(t, grants, Policy{Role: "ADMIN"}, uint64(1))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePolicyPermissionDenied(t *testing.T) {
	grants := &fakeGrants{
		roles: map[uint64][]string{1: {"ADMIN"}},
		perms: map[uint64][]string{1: {"READ"}},
	}
	rec := runPolicy(t, grants, Policy{Role: "ADMIN", Permission: "PRODUCT_DELETE"}, uint64(1))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePolicyRoleAndPermission(t *testing.T) {
	grants := &fakeGrants{
		roles: map[uint64][]string{1: {"ADMIN"}},
		perms: map[uint64][]string{1: {"PRODUCT_CREATE", "PRODUCT_DELETE"}},
	}
	rec := runPolicy(t, grants, Policy{Role: "ADMIN", Permission: "PRODUCT_DELETE"}, uint64(1))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePolicyEmptyPolicyPasses(t *testing.T) {
	rec := runPolicy(t, &fakeGrants{}, Policy{}, uint64(1))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequirePolicyLookupError(t *testing.T) {
	grants := &fakeGrants{err: errors.New("db down")}
	rec := runPolicy(t, grants, Policy{Role: "ADMIN"}, uint64(1))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
