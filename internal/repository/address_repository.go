package repository

import (
	"context"
	"database/sql"

	"github.com/ngocminh/silvershop/internal/model"
)

// AddressRepo encapsulates queries against the `user_addresses` table.
// Writing an address with IsDefault set first clears the flag on every
// other address of the same user, so at most one default survives.
type AddressRepo struct {
	db *sql.DB
}

func NewAddressRepo(db *sql.DB) *AddressRepo { return &AddressRepo{db: db} }

const addressCols = "id, user_id, type, street, city, state, postal_code, country, is_default, created_at, updated_at"

func (r *AddressRepo) Create(ctx context.Context, a *model.UserAddress) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.ExecContext(ctx,
			"UPDATE user_addresses SET is_default=0 WHERE user_id=?", a.UserID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx,
		"INSERT INTO user_addresses (user_id, type, street, city, state, postal_code, country, is_default) VALUES (?,?,?,?,?,?,?,?)",
		a.UserID, a.Type, a.Street, a.City, a.State, a.PostalCode, a.Country, a.IsDefault)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return tx.Commit()
}

// GetByID returns an address only when it belongs to the given user.
func (r *AddressRepo) GetByID(ctx context.Context, id, userID uint64) (model.UserAddress, error) {
	var a model.UserAddress
	err := r.db.QueryRowContext(ctx,
		"SELECT "+addressCols+" FROM user_addresses WHERE id=? AND user_id=? LIMIT 1", id, userID).
		Scan(&a.ID, &a.UserID, &a.Type, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

func (r *AddressRepo) ListByUser(ctx context.Context, userID uint64) ([]model.UserAddress, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+addressCols+" FROM user_addresses WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var addrs []model.UserAddress
	for rows.Next() {
		var a model.UserAddress
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func (r *AddressRepo) Update(ctx context.Context, a *model.UserAddress) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if a.IsDefault {
		if _, err := tx.ExecContext(ctx,
			"UPDATE user_addresses SET is_default=0 WHERE user_id=? AND id<>?", a.UserID, a.ID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE user_addresses SET type=?, street=?, city=?, state=?, postal_code=?, country=?, is_default=? WHERE id=? AND user_id=?",
		a.Type, a.Street, a.City, a.State, a.PostalCode, a.Country, a.IsDefault, a.ID, a.UserID)
	if err != nil {
		return err
	}
	if err := requireAffected(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *AddressRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM user_addresses WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
