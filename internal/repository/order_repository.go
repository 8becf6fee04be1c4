package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ngocminh/silvershop/internal/model"
)

// OrderRepo persists orders and their immutable line snapshots.
type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, user_id, total_cents, status, payment_status, provider, transaction_id,
	ship_name, ship_phone, ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_country,
	paid_at, delivered_at, created_at`

// Create inserts the order and all item rows in one transaction.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, total_cents, status, payment_status,
		 ship_name, ship_phone, ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_country)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.UserID, o.TotalCents, o.Status, o.PaymentStatus,
		o.Shipping.Name, o.Shipping.Phone, o.Shipping.AddressLine1, o.Shipping.AddressLine2,
		o.Shipping.City, o.Shipping.State, o.Shipping.PostalCode, o.Shipping.Country)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)

	for i := range o.Items {
		it := &o.Items[i]
		res, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, name, price_cents, quantity) VALUES (?,?,?,?,?)",
			o.ID, it.ProductID, it.Name, it.PriceCents, it.Quantity)
		if err != nil {
			return err
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		it.ID = uint64(itemID)
	}
	return tx.Commit()
}

func scanOrder(scan func(dest ...any) error) (model.Order, error) {
	var (
		o                   model.Order
		paidAt, deliveredAt sql.NullTime
	)
	err := scan(&o.ID, &o.UserID, &o.TotalCents, &o.Status, &o.PaymentStatus, &o.Provider, &o.TransactionID,
		&o.Shipping.Name, &o.Shipping.Phone, &o.Shipping.AddressLine1, &o.Shipping.AddressLine2,
		&o.Shipping.City, &o.Shipping.State, &o.Shipping.PostalCode, &o.Shipping.Country,
		&paidAt, &deliveredAt, &o.CreatedAt)
	if err != nil {
		return o, err
	}
	if paidAt.Valid {
		o.PaidAt = &paidAt.Time
	}
	if deliveredAt.Valid {
		o.DeliveredAt = &deliveredAt.Time
	}
	return o, nil
}

// GetByID loads one order including its items.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (model.Order, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+orderCols+" FROM orders WHERE id=? LIMIT 1", id)
	o, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	if err != nil {
		return o, err
	}
	o.Items, err = r.itemsFor(ctx, o.ID)
	return o, err
}

func (r *OrderRepo) itemsFor(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, name, price_cents, quantity FROM order_items WHERE order_id=? ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.PriceCents, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByUser returns the user's orders, newest first, items included.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	return r.list(ctx, "SELECT "+orderCols+" FROM orders WHERE user_id=? ORDER BY id DESC", userID)
}

// ListAll returns every order, newest first, items included.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, "SELECT "+orderCols+" FROM orders ORDER BY id DESC")
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := r.itemsFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// UpdateStatus overwrites the order status; transitioning to delivered
// stamps delivered_at. Transition validation happens in the handler.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	var (
		res sql.Result
		err error
	)
	if status == model.OrderDelivered {
		res, err = r.db.ExecContext(ctx,
			"UPDATE orders SET status=?, delivered_at=? WHERE id=?", status, time.Now().UTC(), id)
	} else {
		res, err = r.db.ExecContext(ctx,
			"UPDATE orders SET status=? WHERE id=?", status, id)
	}
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// RecordPayment stamps the outcome reported by a payment gateway.
func (r *OrderRepo) RecordPayment(ctx context.Context, id uint64, paid bool, provider, transactionID string) error {
	var (
		res sql.Result
		err error
	)
	if paid {
		res, err = r.db.ExecContext(ctx,
			"UPDATE orders SET status=?, payment_status=?, provider=?, transaction_id=?, paid_at=? WHERE id=?",
			model.OrderPaid, model.PaymentPaid, provider, transactionID, time.Now().UTC(), id)
	} else {
		res, err = r.db.ExecContext(ctx,
			"UPDATE orders SET status=?, payment_status=?, provider=?, transaction_id=? WHERE id=?",
			model.OrderCancelled, model.PaymentFailed, provider, transactionID, id)
	}
	if err != nil {
		return err
	}
	return requireAffected(res)
}
