package repository

import (
	"context"
	"database/sql"

	"github.com/ngocminh/silvershop/internal/model"
)

// RBACRepo covers the two junction tables, user_roles and
// role_permissions, plus the resolution queries used by the
// authorization middleware. Lookups are direct junction joins with no
// caching; every protected request pays them.
type RBACRepo struct {
	db *sql.DB
}

func NewRBACRepo(db *sql.DB) *RBACRepo { return &RBACRepo{db: db} }

// AssignRole links a user to a role. Duplicate pairs are allowed, as in
// the schema.
func (r *RBACRepo) AssignRole(ctx context.Context, ur *model.UserRole) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO user_roles (user_id, role_id) VALUES (?,?)", ur.UserID, ur.RoleID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ur.ID = uint64(id)
	return nil
}

func (r *RBACRepo) ListUserRoles(ctx context.Context) ([]model.UserRole, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, user_id, role_id FROM user_roles ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.UserRole
	for rows.Next() {
		var ur model.UserRole
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.RoleID); err != nil {
			return nil, err
		}
		out = append(out, ur)
	}
	return out, rows.Err()
}

func (r *RBACRepo) DeleteUserRole(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM user_roles WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// GrantPermission links a role to a permission.
func (r *RBACRepo) GrantPermission(ctx context.Context, rp *model.RolePermission) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO role_permissions (role_id, permission_id) VALUES (?,?)", rp.RoleID, rp.PermissionID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rp.ID = uint64(id)
	return nil
}

func (r *RBACRepo) ListRolePermissions(ctx context.Context) ([]model.RolePermission, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, role_id, permission_id FROM role_permissions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.RolePermission
	for rows.Next() {
		var rp model.RolePermission
		if err := rows.Scan(&rp.ID, &rp.RoleID, &rp.PermissionID); err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

func (r *RBACRepo) DeleteRolePermission(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM role_permissions WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// RoleNamesForUser resolves the names of every role a user holds.
func (r *RBACRepo) RoleNamesForUser(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.name FROM user_roles ur
		 JOIN roles r ON r.id = ur.role_id
		 WHERE ur.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNames(rows)
}

// RoleIDsForUser resolves the role ids a user holds, used when issuing
// access tokens.
func (r *RBACRepo) RoleIDsForUser(ctx context.Context, userID uint64) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT role_id FROM user_roles WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PermissionNamesForUser resolves the permission names reachable through
// every role a user holds: user_roles -> role_permissions -> permissions.
func (r *RBACRepo) PermissionNamesForUser(ctx context.Context, userID uint64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT p.name FROM user_roles ur
		 JOIN role_permissions rp ON rp.role_id = ur.role_id
		 JOIN permissions p ON p.id = rp.permission_id
		 WHERE ur.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNames(rows)
}

func scanNames(rows *sql.Rows) ([]string, error) {
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
