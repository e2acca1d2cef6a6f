package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/models"
)

// UserRepo persists user accounts.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, created_at, updated_at, email, name, password_hash, is_staff, is_superuser`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Email, &u.Name, &u.PasswordHash, &u.IsStaff, &u.IsSuperuser)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user row. Returns errs.ErrAlreadyExists when the
// email is taken.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, email, name, password_hash, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.CreatedAt, u.UpdatedAt, u.Email, u.Name, u.PasswordHash, u.IsStaff, u.IsSuperuser)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByEmail looks up a user by exact (already normalized) email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByID looks up a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// Update writes the mutable profile columns of u. Returns
// errs.ErrAlreadyExists when the new email collides with another user.
func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET email = $2, name = $3, password_hash = $4, updated_at = $5
		WHERE id = $1
	`, u.ID, u.Email, u.Name, u.PasswordHash, u.UpdatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
