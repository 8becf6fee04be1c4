package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/config"
	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/queue"
	"github.com/ngocminh/silvershop/internal/repository"
)

// OrderStore is the slice of the order repository the handler needs.
// Satisfied by repository.OrderRepo.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	GetByID(ctx context.Context, id uint64) (model.Order, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

// OrderHandler places orders from the caller's cart and serves order
// history. Placement re-snapshots every line price from the live
// catalog, so the charged total reflects the price at placement even if
// the cart line is older.
type OrderHandler struct {
	Cfg      config.Config
	Orders   OrderStore
	Carts    CartStore
	Products ProductSource
}

func NewOrderHandler(cfg config.Config, orders OrderStore, carts CartStore, products ProductSource) *OrderHandler {
	return &OrderHandler{Cfg: cfg, Orders: orders, Carts: carts, Products: products}
}

func (h *OrderHandler) Place(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		Shipping model.ShippingAddress `json:"shipping_address"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !req.Shipping.Complete() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "incomplete shipping address"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cart, err := h.Carts.GetByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	// Re-snapshot every line from the live catalog. A product removed
	// since it was added to the cart blocks the order.
	order := model.Order{
		UserID:        user.ID,
		Status:        model.OrderPending,
		PaymentStatus: model.PaymentUnpaid,
		Shipping:      req.Shipping,
	}
	for _, line := range cart.Items {
		p, err := h.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "product no longer available"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID:  p.ID,
			Name:       p.Name,
			PriceCents: p.PriceCents,
			Quantity:   line.Quantity,
		})
		order.TotalCents += p.PriceCents * line.Quantity
	}

	if err := h.Orders.Create(ctx, &order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if err := h.Carts.Clear(ctx, user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	publishOrderEvent(h.Cfg.AMQPURL, queue.OrderEvent{
		Type:       queue.EventOrderPlaced,
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalCents: order.TotalCents,
		Status:     order.Status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, order)
}

// publishOrderEvent fires the event in the background. Delivery is best
// effort; the broker being down never fails the request.
func publishOrderEvent(url string, event queue.OrderEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue.PublishOrderEvent(ctx, url, event)
	}()
}

// ListMine returns the caller's own orders, newest first.
func (h *OrderHandler) ListMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	orders, err := h.Orders.ListByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, orders)
}

// GetMine returns one of the caller's orders. Another user's order id
// yields a 404, not a 403, so ids cannot be probed.
func (h *OrderHandler) GetMine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	order, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "order not found")
	}
	if order.UserID != user.ID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}
	return c.JSON(http.StatusOK, order)
}

// ListAll returns every order; admin only via the router policy.
func (h *OrderHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()
	orders, err := h.Orders.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus moves an order through its lifecycle; admin only via the
// router policy. Terminal orders reject further transitions.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidOrderStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	order, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "order not found")
	}
	if model.TerminalOrderStatus(order.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "order is in a terminal state"})
	}
	if err := h.Orders.UpdateStatus(ctx, id, req.Status); err != nil {
		return writeRepoError(c, err, "order not found")
	}
	updated, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return writeRepoError(c, err, "order not found")
	}
	return c.JSON(http.StatusOK, updated)
}
