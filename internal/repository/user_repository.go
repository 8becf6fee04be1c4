package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ngocminh/silvershop/internal/model"
)

// UserRepo encapsulates queries against the `users` table. Password
// hashing happens in the handler layer; this repository only ever sees
// the bcrypt hash.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = "id, username, email, password_hash, full_name, phone, created_at, updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// Create inserts a user and returns its ID. Username and email
// uniqueness violations surface as ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, full_name, phone) VALUES (?,?,?,?,?)",
		u.Username, u.Email, u.PasswordHash, u.FullName, u.Phone)
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
	u.ID = uint64(id)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? LIMIT 1", strings.TrimSpace(username)))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1",
		strings.ToLower(strings.TrimSpace(email))))
}

// List returns every user. Password hashes stay inside the struct but
// are never serialized thanks to the json:"-" tag.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update overwrites the mutable profile fields. The password hash is
// only touched when a non-empty hash is supplied.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	var (
		res sql.Result
		err error
	)
	if u.PasswordHash != "" {
		res, err = r.db.ExecContext(ctx,
			"UPDATE users SET email=?, full_name=?, phone=?, password_hash=? WHERE id=?",
			strings.ToLower(strings.TrimSpace(u.Email)), u.FullName, u.Phone, u.PasswordHash, u.ID)
	} else {
		res, err = r.db.ExecContext(ctx,
			"UPDATE users SET email=?, full_name=?, phone=? WHERE id=?",
			strings.ToLower(strings.TrimSpace(u.Email)), u.FullName, u.Phone, u.ID)
	}
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireAffected(res)
}

// UpdatePassword replaces only the password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, hash string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET password_hash=? WHERE id=?", hash, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// requireAffected converts a zero-row result into ErrNotFound. The DSN
// sets clientFoundRows, so RowsAffected counts matched rows and an
// update carrying unchanged values does not trip this.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
