package middleware

import (
	"context"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// Policy states what a route requires from the caller. Either field may
// be empty to skip that check. Routes declare a Policy value instead of
// stacking separate role and permission middleware factories, so the
// authorization requirements of a route are a single piece of data.
type Policy struct {
	Role       string
	Permission string
}

// GrantSource resolves the role and permission names a user holds via
// the junction tables. Satisfied by repository.RBACRepo. Lookups are
// uncached; every protected request performs them.
type GrantSource interface {
	RoleNamesForUser(ctx context.Context, userID uint64) ([]string, error)
	PermissionNamesForUser(ctx context.Context, userID uint64) ([]string, error)
}

// RequirePolicy returns the authorization gate for one route. It assumes
// JWTAuth ran first and stored the user id in the context. The role
// check runs before the permission check; a caller failing either gets
// a 403.
func RequirePolicy(grants GrantSource, p Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get(CtxUserID).(uint64)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			ctx := c.Request().Context()

			if p.Role != "" {
				roles, err := grants.RoleNamesForUser(ctx, userID)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "role lookup failed"})
				}
				if !slices.Contains(roles, p.Role) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient role"})
				}
			}
			if p.Permission != "" {
				perms, err := grants.PermissionNamesForUser(ctx, userID)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "permission lookup failed"})
				}
				if !slices.Contains(perms, p.Permission) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient permission"})
				}
			}
			return next(c)
		}
	}
}
