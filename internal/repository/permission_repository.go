package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ngocminh/silvershop/internal/model"
)

// PermissionRepo encapsulates queries against the `permissions` table.
type PermissionRepo struct {
	db *sql.DB
}

func NewPermissionRepo(db *sql.DB) *PermissionRepo { return &PermissionRepo{db: db} }

func (r *PermissionRepo) Create(ctx context.Context, p *model.Permission) error {
	p.Name = strings.ToUpper(strings.TrimSpace(p.Name))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO permissions (name, description) VALUES (?,?)", p.Name, p.Description)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func (r *PermissionRepo) GetByID(ctx context.Context, id uint64) (model.Permission, error) {
	var p model.Permission
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM permissions WHERE id=? LIMIT 1", id).
		Scan(&p.ID, &p.Name, &p.Description)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

func (r *PermissionRepo) List(ctx context.Context) ([]model.Permission, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, description FROM permissions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []model.Permission
	for rows.Next() {
		var p model.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *PermissionRepo) Update(ctx context.Context, p *model.Permission) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE permissions SET name=?, description=? WHERE id=?",
		strings.ToUpper(strings.TrimSpace(p.Name)), p.Description, p.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireAffected(res)
}

func (r *PermissionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM permissions WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
