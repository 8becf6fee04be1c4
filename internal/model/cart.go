package model

import "time"

// CartItem is a single line in a cart. PriceCents is a snapshot of the
// product price taken when the line was first added; later catalog price
// changes do not move cart lines. The authoritative charge is
// re-snapshotted again at order placement.
type CartItem struct {
	ID         uint64 `json:"id"`
	ProductID  uint64 `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int64  `json:"quantity"`
	ImageURL   string `json:"image_url"`
}

// Cart holds at most one record per user. TotalCents is always the sum
// of price snapshot times quantity over all lines and is recomputed on
// every mutation before the cart is persisted.
type Cart struct {
	ID         uint64     `json:"id"`
	UserID     uint64     `json:"user_id"`
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AddItem merges a product into the cart: an existing line has its
// quantity incremented, otherwise a new line with the given price
// snapshot is appended. Quantities below one are clamped to one.
func (c *Cart) AddItem(p Product, quantity int64) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity += quantity
			c.Recompute()
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Quantity:   quantity,
		ImageURL:   p.ImageURL,
	})
	c.Recompute()
}

// SetQuantity updates the quantity of an existing line. A quantity of
// zero or less removes the line. It reports whether the product was
// present in the cart.
func (c *Cart) SetQuantity(productID uint64, quantity int64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		c.Recompute()
		return true
	}
	return false
}

// RemoveItem drops the line for the given product, if any, and reports
// whether a line was removed.
func (c *Cart) RemoveItem(productID uint64) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recompute()
			return true
		}
	}
	return false
}

// Clear removes every line and resets the total.
func (c *Cart) Clear() {
	c.Items = nil
	c.TotalCents = 0
}

// Recompute restores the invariant TotalCents = Σ(price × quantity).
func (c *Cart) Recompute() {
	var total int64
	for _, it := range c.Items {
		total += it.PriceCents * it.Quantity
	}
	c.TotalCents = total
}
