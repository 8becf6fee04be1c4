package model

import "time"

// Order status values. Cancelled and delivered are terminal: once an
// order reaches either, further status updates are rejected.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// Payment status values tracked independently of the order status.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
	PaymentFailed = "failed"
)

// ValidOrderStatus reports whether s is a member of the allowed status set.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// TerminalOrderStatus reports whether s permits no further transitions.
func TerminalOrderStatus(s string) bool {
	return s == OrderCancelled || s == OrderDelivered
}

// OrderItem is one line of an order. PriceCents is the snapshot taken at
// order time, so later catalog price changes never move an order total.
type OrderItem struct {
	ID         uint64 `json:"id"`
	ProductID  uint64 `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int64  `json:"quantity"`
}

// ShippingAddress is the address snapshot embedded in an order.
// Name, Phone, AddressLine1, City, PostalCode and Country are required
// at placement time.
type ShippingAddress struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// Complete reports whether all required address fields are present.
func (a ShippingAddress) Complete() bool {
	return a.Name != "" && a.Phone != "" && a.AddressLine1 != "" &&
		a.City != "" && a.PostalCode != "" && a.Country != ""
}

// Order is a placed order with immutable price snapshots.
//
// Fields:
//
//	TotalCents    – sum of line price × quantity, fixed at placement.
//	Status        – see the Order* constants above.
//	PaymentStatus – see the Payment* constants above.
//	Provider      – payment provider that settled the order (momo/vnpay).
//	TransactionID – provider transaction reference from the IPN.
//	PaidAt        – stamped when the payment succeeds.
//	DeliveredAt   – stamped when the status transitions to delivered.
type Order struct {
	ID            uint64          `json:"id"`
	UserID        uint64          `json:"user_id"`
	Items         []OrderItem     `json:"items"`
	TotalCents    int64           `json:"total_cents"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	Provider      string          `json:"provider,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Shipping      ShippingAddress `json:"shipping_address"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
