package repository

import (
	"context"
	"database/sql"

	"github.com/ngocminh/silvershop/internal/model"
)

// CartRepo persists one cart per user. Mutations replace the whole item
// set inside a transaction; the read-then-write sequence around it is
// not serialized, so concurrent updates to the same cart can lose
// writes, matching the documented request model.
type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{db: db} }

// GetByUser loads the user's cart with all items. A missing cart is
// returned as an empty cart shape with ID zero rather than an error.
func (r *CartRepo) GetByUser(ctx context.Context, userID uint64) (model.Cart, error) {
	cart := model.Cart{UserID: userID, Items: []model.CartItem{}}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, total_cents, updated_at FROM carts WHERE user_id=? LIMIT 1", userID).
		Scan(&cart.ID, &cart.UserID, &cart.TotalCents, &cart.UpdatedAt)
	if err == sql.ErrNoRows {
		return cart, nil
	}
	if err != nil {
		return cart, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, name, price_cents, quantity, image_url FROM cart_items WHERE cart_id=? ORDER BY id", cart.ID)
	if err != nil {
		return cart, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.PriceCents, &it.Quantity, &it.ImageURL); err != nil {
			return cart, err
		}
		cart.Items = append(cart.Items, it)
	}
	return cart, rows.Err()
}

// Save writes the cart and its full item set. A cart row is created on
// first save; existing items are replaced wholesale.
func (r *CartRepo) Save(ctx context.Context, cart *model.Cart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if cart.ID == 0 {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO carts (user_id, total_cents) VALUES (?,?)", cart.UserID, cart.TotalCents)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		cart.ID = uint64(id)
	} else {
		if _, err := tx.ExecContext(ctx,
			"UPDATE carts SET total_cents=? WHERE id=?", cart.TotalCents, cart.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM cart_items WHERE cart_id=?", cart.ID); err != nil {
			return err
		}
	}
	for i := range cart.Items {
		it := &cart.Items[i]
		res, err := tx.ExecContext(ctx,
			"INSERT INTO cart_items (cart_id, product_id, name, price_cents, quantity, image_url) VALUES (?,?,?,?,?,?)",
			cart.ID, it.ProductID, it.Name, it.PriceCents, it.Quantity, it.ImageURL)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		it.ID = uint64(id)
	}
	return tx.Commit()
}

// Clear empties the cart for a user. A missing cart is not an error.
func (r *CartRepo) Clear(ctx context.Context, userID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var cartID uint64
	err = tx.QueryRowContext(ctx, "SELECT id FROM carts WHERE user_id=? LIMIT 1", userID).Scan(&cartID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id=?", cartID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "UPDATE carts SET total_cents=0 WHERE id=?", cartID); err != nil {
		return err
	}
	return tx.Commit()
}
