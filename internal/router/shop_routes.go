package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/handler"
	"github.com/ngocminh/silvershop/internal/middleware"
	"github.com/ngocminh/silvershop/internal/model"
)

// RegisterShop wires the cart, order, address and payment endpoints.
// Everything user-scoped sits behind the auth gate; the IPN callbacks
// stay open because the gateways authenticate with signatures, not
// bearer tokens.
func RegisterShop(e *echo.Echo, cart *handler.CartHandler, order *handler.OrderHandler,
	addr *handler.AddressHandler, pay *handler.PaymentHandler,
	authGate echo.MiddlewareFunc, grants middleware.GrantSource) {

	admin := func(perm string) echo.MiddlewareFunc {
		return middleware.RequirePolicy(grants, middleware.Policy{Role: model.RoleAdmin, Permission: perm})
	}

	g := e.Group("/api", authGate)

	g.GET("/cart", cart.Get)
	g.DELETE("/cart", cart.Clear)
	g.POST("/cart/items", cart.AddItem)
	g.PUT("/cart/items/:id", cart.UpdateItem)
	g.DELETE("/cart/items/:id", cart.RemoveItem)

	g.POST("/orders", order.Place)
	g.GET("/orders", order.ListMine)
	g.GET("/orders/:id", order.GetMine)
	g.GET("/admin/orders", order.ListAll, admin("ORDER_READ"))
	g.PUT("/admin/orders/:id/status", order.UpdateStatus, admin("ORDER_UPDATE"))

	g.POST("/addresses", addr.Create)
	g.GET("/addresses", addr.List)
	g.GET("/addresses/:id", addr.GetByID)
	g.PUT("/addresses/:id", addr.Update)
	g.DELETE("/addresses/:id", addr.Delete)

	g.POST("/payments/momo", pay.CreateMomo)
	g.POST("/payments/vnpay", pay.CreateVNPay)

	e.POST("/api/payments/momo/ipn", pay.MomoIPN)
	e.GET("/api/payments/vnpay/ipn", pay.VNPayIPN)
}
