// Package queue defines the order events exchanged over the message
// broker and the background consumer that records them.
package queue

// Event types published to the order.events queue.
const (
	EventOrderPlaced  = "order.placed"
	EventOrderPayment = "order.payment"
)

// OrderEvent is published when an order is placed or when a payment
// gateway reports an outcome. It carries enough information for
// downstream consumers to log or notify without querying the primary
// database.
type OrderEvent struct {
	Type          string `json:"type"`
	OrderID       uint64 `json:"order_id"`
	UserID        uint64 `json:"user_id"`
	TotalCents    int64  `json:"total_cents"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status,omitempty"`
	Provider      string `json:"provider,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
