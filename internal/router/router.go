// Package router registers the HTTP routes, grouped by area. Each
// Register* function wires one handler bundle plus the gates its routes
// need: JWTAuth for anything user-scoped, RequirePolicy for admin
// operations, and the token-bucket limiter on the auth endpoints.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/handler"
)

// RegisterRoutes registers the unauthenticated service endpoints: the
// health check and the API documentation.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/api-docs", handler.DocsUI)
	e.GET("/api-docs/openapi.json", handler.Docs)
}
