package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/handler"
	"github.com/ngocminh/silvershop/internal/middleware"
	"github.com/ngocminh/silvershop/internal/model"
)

// RegisterCatalog wires the category and product endpoints. Reads are
// public so guests can browse; writes require the ADMIN role with the
// entity-specific permission.
func RegisterCatalog(e *echo.Echo, cat *handler.CategoryHandler, prod *handler.ProductHandler,
	authGate echo.MiddlewareFunc, grants middleware.GrantSource) {

	admin := func(perm string) echo.MiddlewareFunc {
		return middleware.RequirePolicy(grants, middleware.Policy{Role: model.RoleAdmin, Permission: perm})
	}

	e.GET("/api/categories", cat.List)
	e.GET("/api/categories/:id", cat.GetByID)
	e.GET("/api/products", prod.List)
	e.GET("/api/products/:id", prod.GetByID)

	g := e.Group("/api", authGate)
	g.POST("/categories", cat.Create, admin("CATEGORY_CREATE"))
	g.PUT("/categories/:id", cat.Update, admin("CATEGORY_UPDATE"))
	g.DELETE("/categories/:id", cat.Delete, admin("CATEGORY_DELETE"))

	g.POST("/products", prod.Create, admin("PRODUCT_CREATE"))
	g.PUT("/products/:id", prod.Update, admin("PRODUCT_UPDATE"))
	g.DELETE("/products/:id", prod.Delete, admin("PRODUCT_DELETE"))
}
