package model

import "time"

// UserAddress is a saved address belonging to a user. A user may have
// many addresses but at most one with IsDefault set; the repository
// unsets the flag on every sibling when a default is written.
type UserAddress struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	Type       string    `json:"type"` // Home, Work, Billing or Shipping
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
