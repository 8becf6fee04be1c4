// Package handler contains the HTTP handlers, one bundle per entity.
// Handlers bind and validate input, call repositories with a bounded
// context, and translate sentinel errors into status codes. No error
// escapes to the framework's default handler.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/middleware"
	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUser returns the user record stored by the auth gate.
func currentUser(c echo.Context) (model.User, error) {
	u, ok := c.Get(middleware.CtxUser).(model.User)
	if !ok {
		return model.User{}, errors.New("no authenticated user in context")
	}
	return u, nil
}

// parseID parses the :id route parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// writeRepoError maps repository sentinel errors onto status codes. The
// notFound message keeps entity wording ("product not found" etc.).
func writeRepoError(c echo.Context, err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFound})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
}

// Health is the liveness endpoint used by load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
