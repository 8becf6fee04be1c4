package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/model"
)

// CartStore is the slice of the cart repository the handlers need.
// Satisfied by repository.CartRepo.
type CartStore interface {
	GetByUser(ctx context.Context, userID uint64) (model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Clear(ctx context.Context, userID uint64) error
}

// ProductSource resolves catalog products for price snapshots.
// Satisfied by repository.ProductRepo.
type ProductSource interface {
	GetByID(ctx context.Context, id uint64) (model.Product, error)
}

// CartHandler serves the per-user cart. All endpoints operate on the
// caller's own cart; there is no cross-user access. Item prices are
// snapshotted when a line is added and do not follow later catalog
// changes.
type CartHandler struct {
	Carts    CartStore
	Products ProductSource
}

func NewCartHandler(carts CartStore, products ProductSource) *CartHandler {
	return &CartHandler{Carts: carts, Products: products}
}

func (h *CartHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	cart, err := h.Carts.GetByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req struct {
		ProductID uint64 `json:"product_id"`
		Quantity  int64  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil || req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Products.GetByID(ctx, req.ProductID)
	if err != nil {
		return writeRepoError(c, err, "product not found")
	}
	cart, err := h.Carts.GetByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	cart.AddItem(p, req.Quantity)
	if err := h.Carts.Save(ctx, &cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Quantity int64 `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cart, err := h.Carts.GetByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if !cart.SetQuantity(productID, req.Quantity) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "item not in cart"})
	}
	if err := h.Carts.Save(ctx, &cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	productID, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	cart, err := h.Carts.GetByUser(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if !cart.RemoveItem(productID) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "item not in cart"})
	}
	if err := h.Carts.Save(ctx, &cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Clear(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	if err := h.Carts.Clear(ctx, user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}
