// Package middleware contains the request gates applied in front of
// protected routes: bearer-token authentication, the role/permission
// policy check, and the auth-route rate limiter. The gates always run
// in that order.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/auth"
	"github.com/ngocminh/silvershop/internal/model"
)

// TokenRevocations answers whether a bearer token has been revoked.
// Satisfied by store.Blacklist.
type TokenRevocations interface {
	Contains(ctx context.Context, token string) (bool, error)
}

// UserSource loads the authenticated user record attached to the
// request context. Satisfied by repository.UserRepo.
type UserSource interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Context keys set by the auth gate for downstream gates and handlers.
const (
	CtxUser   = "user"    // model.User
	CtxUserID = "user_id" // uint64
	CtxToken  = "token"   // raw bearer token string
)

// JWTAuth returns the authentication gate. It extracts the bearer token,
// rejects revoked tokens before even parsing them (a blacklisted token
// is dead no matter what its signature says), verifies signature and
// expiry, and loads the full user record into the context.
//
// Responses: 401 for a missing or blacklisted token or an unknown user,
// 400 for a token that fails signature or expiry checks.
func JWTAuth(secret string, revoked TokenRevocations, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			ctx := c.Request().Context()
			isRevoked, err := revoked.Contains(ctx, raw)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token check failed"})
			}
			if isRevoked {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token revoked"})
			}

			userID, _, err := auth.Parse(secret, raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid or expired token"})
			}

			u, err := users.GetByID(ctx, userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown user"})
			}

			c.Set(CtxUser, u)
			c.Set(CtxUserID, u.ID)
			c.Set(CtxToken, raw)
			return next(c)
		}
	}
}
