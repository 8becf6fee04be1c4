package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/ngocminh/silvershop/internal/config"
	"github.com/ngocminh/silvershop/internal/middleware"
	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/repository"
)

type fakeOrders struct {
	nextID uint64
	orders map[uint64]model.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{nextID: 1, orders: map[uint64]model.Order{}}
}

func (f *fakeOrders) Create(_ context.Context, o *model.Order) error {
	o.ID = f.nextID
	f.nextID++
	f.orders[o.ID] = *o
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id uint64) (model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return model.Order{}, repository.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID uint64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListAll(_ context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id uint64, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	f.orders[id] = o
	return nil
}

type fakeCarts struct {
	carts   map[uint64]model.Cart
	cleared bool
}

func (f *fakeCarts) GetByUser(_ context.Context, userID uint64) (model.Cart, error) {
	c, ok := f.carts[userID]
	if !ok {
		return model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
	}
	return c, nil
}

func (f *fakeCarts) Save(_ context.Context, cart *model.Cart) error {
	f.carts[cart.UserID] = *cart
	return nil
}

func (f *fakeCarts) Clear(_ context.Context, userID uint64) error {
	f.cleared = true
	c := f.carts[userID]
	c.Clear()
	f.carts[userID] = c
	return nil
}

type fakeProducts struct {
	products map[uint64]model.Product
}

func (f *fakeProducts) GetByID(_ context.Context, id uint64) (model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func orderTestContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUser, model.User{ID: 1, Username: "minh"})
	c.Set(middleware.CtxUserID, uint64(1))
	return c, rec
}

const shippingBody = `{"shipping_address":{"name":"Nguyen Van A","phone":"0900000000","address_line1":"1 Tran Hung Dao","city":"Ha Noi","postal_code":"100000","country":"VN"}}`

func TestPlaceOrderEmptyCart(t *testing.T) {
	orders := newFakeOrders()
	carts := &fakeCarts{carts: map[uint64]model.Cart{}}
	h := NewOrderHandler(config.Config{}, orders, carts, &fakeProducts{})

	c, rec := orderTestContext(t, http.MethodPost, shippingBody)
	require.NoError(t, h.Place(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, orders.orders)
	require.False(t, carts.cleared)
}

func TestPlaceOrderIncompleteAddress(t *testing.T) {
	orders := newFakeOrders()
	h := NewOrderHandler(config.Config{}, orders, &fakeCarts{carts: map[uint64]model.Cart{}}, &fakeProducts{})

	c, rec := orderTestContext(t, http.MethodPost, `{"shipping_address":{"name":"A","city":"Ha Noi"}}`)
	require.NoError(t, h.Place(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, orders.orders)
}

func TestPlaceOrderResnapshotsAndClearsCart(t *testing.T) {
	cart := model.Cart{ID: 5, UserID: 1}
	cart.AddItem(model.Product{ID: 10, Name: "Silver Ring", PriceCents: 1000}, 2)

	orders := newFakeOrders()
	carts := &fakeCarts{carts: map[uint64]model.Cart{1: cart}}
	// The catalog price moved since the line was added; the order must
	// charge the current price, not the cart snapshot.
	products := &fakeProducts{products: map[uint64]model.Product{
		10: {ID: 10, Name: "Silver Ring", PriceCents: 1500},
	}}
	h := NewOrderHandler(config.Config{}, orders, carts, products)

	c, rec := orderTestContext(t, http.MethodPost, shippingBody)
	require.NoError(t, h.Place(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, orders.orders, 1)
	placed := orders.orders[1]
	require.Equal(t, uint64(1), placed.UserID)
	require.Equal(t, model.OrderPending, placed.Status)
	require.Equal(t, model.PaymentUnpaid, placed.PaymentStatus)
	require.Equal(t, int64(3000), placed.TotalCents)
	require.Len(t, placed.Items, 1)
	require.Equal(t, int64(1500), placed.Items[0].PriceCents)
	require.Equal(t, int64(2), placed.Items[0].Quantity)

	require.True(t, carts.cleared)
	require.Empty(t, carts.carts[1].Items)
}

func TestPlaceOrderProductGone(t *testing.T) {
	cart := model.Cart{ID: 5, UserID: 1}
	cart.AddItem(model.Product{ID: 10, Name: "Silver Ring", PriceCents: 1000}, 1)

	orders := newFakeOrders()
	carts := &fakeCarts{carts: map[uint64]model.Cart{1: cart}}
	h := NewOrderHandler(config.Config{}, orders, carts, &fakeProducts{products: map[uint64]model.Product{}})

	c, rec := orderTestContext(t, http.MethodPost, shippingBody)
	require.NoError(t, h.Place(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, orders.orders)
	require.False(t, carts.cleared)
}

func TestUpdateStatusAcceptsCurrentValue(t *testing.T) {
	orders := newFakeOrders()
	orders.orders[1] = model.Order{ID: 1, UserID: 1, Status: model.OrderPending, PaymentStatus: model.PaymentUnpaid}
	h := NewOrderHandler(config.Config{}, orders, &fakeCarts{carts: map[uint64]model.Cart{}}, &fakeProducts{})

	c, rec := orderTestContext(t, http.MethodPut, `{"status":"pending"}`)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(1))
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateStatusRejectsTerminalOrder(t *testing.T) {
	orders := newFakeOrders()
	orders.orders[1] = model.Order{ID: 1, UserID: 1, Status: model.OrderDelivered}
	h := NewOrderHandler(config.Config{}, orders, &fakeCarts{carts: map[uint64]model.Cart{}}, &fakeProducts{})

	c, rec := orderTestContext(t, http.MethodPut, `{"status":"shipped"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, model.OrderDelivered, orders.orders[1].Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	orders := newFakeOrders()
	orders.orders[1] = model.Order{ID: 1, Status: model.OrderPending}
	h := NewOrderHandler(config.Config{}, orders, &fakeCarts{carts: map[uint64]model.Cart{}}, &fakeProducts{})

	c, rec := orderTestContext(t, http.MethodPut, `{"status":"returned"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateStatus(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
