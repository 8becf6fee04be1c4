package model

import "time"

// User represents an application user record as stored in the `users`
// table. Passwords are never kept in clear text; the handler hashes
// them with bcrypt before any insert or update touches the column.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique login name.
//	Email        – unique email address.
//	PasswordHash – bcrypt hashed password.
//	FullName     – optional display name.
//	Phone        – optional phone number.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role is a row in the `roles` table. Users are linked to roles through
// the user_roles junction table rather than a column on the user row.
type Role struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Permission is a row in the `permissions` table. Roles are linked to
// permissions through the role_permissions junction table.
type Permission struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UserRole is a junction record associating one user with one role.
// Duplicate pairs are not rejected at the schema level.
type UserRole struct {
	ID     uint64 `json:"id"`
	UserID uint64 `json:"user_id"`
	RoleID uint64 `json:"role_id"`
}

// RolePermission is a junction record associating one role with one
// permission.
type RolePermission struct {
	ID           uint64 `json:"id"`
	RoleID       uint64 `json:"role_id"`
	PermissionID uint64 `json:"permission_id"`
}

// RoleUser is the default role assigned to every new registration;
// RoleAdmin guards the management endpoints. Both are seeded by the schema.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
