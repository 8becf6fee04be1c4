package model

import "time"

// Category groups products. Names are unique.
type Category struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a catalog item. All monetary values in this codebase are
// stored in minor currency units (PriceCents). Price and stock must be
// non-negative; the handlers validate before the repository is called.
//
// Tags are persisted as a JSON array in a single column.
type Product struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int64     `json:"stock"`
	CategoryID  uint64    `json:"category_id"`
	ImageURL    string    `json:"image_url"`
	Material    string    `json:"material"`
	WeightGrams float64   `json:"weight_grams"`
	Size        string    `json:"size"`
	Style       string    `json:"style"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
