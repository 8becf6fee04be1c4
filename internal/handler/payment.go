package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ngocminh/silvershop/internal/config"
	"github.com/ngocminh/silvershop/internal/model"
	"github.com/ngocminh/silvershop/internal/payment"
	"github.com/ngocminh/silvershop/internal/queue"
	"github.com/ngocminh/silvershop/internal/repository"
)

// PaymentHandler initiates gateway payments for pending orders and
// consumes the gateways' IPN callbacks. Every IPN signature is verified
// before any order state changes; an unsigned or tampered notification
// is rejected outright.
type PaymentHandler struct {
	Cfg    config.Config
	Orders *repository.OrderRepo
	Momo   *payment.MomoClient
	VNPay  *payment.VNPayClient
}

func NewPaymentHandler(cfg config.Config, orders *repository.OrderRepo, momo *payment.MomoClient, vnpay *payment.VNPayClient) *PaymentHandler {
	return &PaymentHandler{Cfg: cfg, Orders: orders, Momo: momo, VNPay: vnpay}
}

// payableOrder loads an order and checks it belongs to the caller and is
// still awaiting payment.
func (h *PaymentHandler) payableOrder(c echo.Context) (model.Order, bool) {
	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return model.Order{}, false
	}
	var req struct {
		OrderID uint64 `json:"order_id"`
	}
	if err := c.Bind(&req); err != nil || req.OrderID == 0 {
		c.JSON(http.StatusBadRequest, echo.Map{"error": "order_id is required"})
		return model.Order{}, false
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	order, err := h.Orders.GetByID(ctx, req.OrderID)
	if err != nil {
		writeRepoError(c, err, "order not found")
		return model.Order{}, false
	}
	if order.UserID != user.ID {
		c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		return model.Order{}, false
	}
	if order.Status != model.OrderPending || order.PaymentStatus != model.PaymentUnpaid {
		c.JSON(http.StatusBadRequest, echo.Map{"error": "order is not awaiting payment"})
		return model.Order{}, false
	}
	return order, true
}

// CreateMomo asks the Momo gateway for a payment URL for a pending order.
func (h *PaymentHandler) CreateMomo(c echo.Context) error {
	order, ok := h.payableOrder(c)
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()
	resp, err := h.Momo.CreatePayment(ctx, order.ID, order.TotalCents)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment gateway unavailable"})
	}
	if resp.ResultCode != 0 {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": resp.Message})
	}
	return c.JSON(http.StatusOK, echo.Map{"pay_url": resp.PayURL, "order_id": order.ID})
}

// MomoIPN receives the gateway's payment notification. The gateway
// expects a 204 once the notification is accepted.
func (h *PaymentHandler) MomoIPN(c echo.Context) error {
	var n payment.MomoIPN
	if err := c.Bind(&n); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !h.Momo.VerifyIPN(n) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid signature"})
	}
	orderID, err := strconv.ParseUint(n.OrderID, 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	order, err := h.Orders.GetByID(ctx, orderID)
	if err != nil {
		return writeRepoError(c, err, "order not found")
	}
	// Gateways retry notifications; a settled order is acknowledged
	// without touching it again.
	if order.PaymentStatus != model.PaymentUnpaid {
		return c.NoContent(http.StatusNoContent)
	}

	paid := n.ResultCode == 0
	txID := strconv.FormatInt(n.TransID, 10)
	if err := h.Orders.RecordPayment(ctx, orderID, paid, "momo", txID); err != nil {
		return writeRepoError(c, err, "order not found")
	}
	h.publishPaymentEvent(order, paid, "momo", txID)
	return c.NoContent(http.StatusNoContent)
}

// CreateVNPay builds the hosted-payment-page URL for a pending order.
func (h *PaymentHandler) CreateVNPay(c echo.Context) error {
	order, ok := h.payableOrder(c)
	if !ok {
		return nil
	}
	payURL := h.VNPay.CreatePaymentURL(order.ID, order.TotalCents, c.RealIP(), time.Now())
	return c.JSON(http.StatusOK, echo.Map{"pay_url": payURL, "order_id": order.ID})
}

// VNPayIPN receives the gateway's notification as query parameters and
// answers in the gateway's RspCode envelope.
func (h *PaymentHandler) VNPayIPN(c echo.Context) error {
	query := c.QueryParams()
	if !h.VNPay.VerifyIPN(query) {
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "97", "Message": "Invalid signature"})
	}
	orderID, err := strconv.ParseUint(query.Get("vnp_TxnRef"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "01", "Message": "Order not found"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	order, err := h.Orders.GetByID(ctx, orderID)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "01", "Message": "Order not found"})
	}
	if order.PaymentStatus != model.PaymentUnpaid {
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "02", "Message": "Order already confirmed"})
	}

	paid := query.Get("vnp_ResponseCode") == "00"
	txID := query.Get("vnp_TransactionNo")
	if err := h.Orders.RecordPayment(ctx, orderID, paid, "vnpay", txID); err != nil {
		return c.JSON(http.StatusOK, echo.Map{"RspCode": "99", "Message": "Unknown error"})
	}
	h.publishPaymentEvent(order, paid, "vnpay", txID)
	return c.JSON(http.StatusOK, echo.Map{"RspCode": "00", "Message": "Confirm Success"})
}

func (h *PaymentHandler) publishPaymentEvent(order model.Order, paid bool, provider, txID string) {
	status, payStatus := model.OrderCancelled, model.PaymentFailed
	if paid {
		status, payStatus = model.OrderPaid, model.PaymentPaid
	}
	publishOrderEvent(h.Cfg.AMQPURL, queue.OrderEvent{
		Type:          queue.EventOrderPayment,
		OrderID:       order.ID,
		UserID:        order.UserID,
		TotalCents:    order.TotalCents,
		Status:        status,
		PaymentStatus: payStatus,
		Provider:      provider,
		TransactionID: txID,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}
