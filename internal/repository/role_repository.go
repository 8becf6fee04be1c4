package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ngocminh/silvershop/internal/model"
)

// RoleRepo encapsulates queries against the `roles` table.
type RoleRepo struct {
	db *sql.DB
}

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{db: db} }

func (r *RoleRepo) Create(ctx context.Context, role *model.Role) error {
	role.Name = strings.ToUpper(strings.TrimSpace(role.Name))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO roles (name, description) VALUES (?,?)", role.Name, role.Description)
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
	role.ID = uint64(id)
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id uint64) (model.Role, error) {
	var role model.Role
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM roles WHERE id=? LIMIT 1", id).
		Scan(&role.ID, &role.Name, &role.Description)
	if err == sql.ErrNoRows {
		return role, ErrNotFound
	}
	return role, err
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (model.Role, error) {
	var role model.Role
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description FROM roles WHERE name=? LIMIT 1",
		strings.ToUpper(strings.TrimSpace(name))).
		Scan(&role.ID, &role.Name, &role.Description)
	if err == sql.ErrNoRows {
		return role, ErrNotFound
	}
	return role, err
}

func (r *RoleRepo) List(ctx context.Context) ([]model.Role, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, description FROM roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *RoleRepo) Update(ctx context.Context, role *model.Role) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE roles SET name=?, description=? WHERE id=?",
		strings.ToUpper(strings.TrimSpace(role.Name)), role.Description, role.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireAffected(res)
}

func (r *RoleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM roles WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
