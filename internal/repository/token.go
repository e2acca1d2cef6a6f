package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/models"
)

// TokenRepo persists the one-per-user bearer tokens.
type TokenRepo struct {
	db *sql.DB
}

func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

func scanToken(row *sql.Row) (*models.Token, error) {
	var t models.Token
	err := row.Scan(&t.ID, &t.UserID, &t.Value, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a token row. The user_id unique constraint guarantees at
// most one token per user; a collision surfaces as errs.ErrAlreadyExists.
func (r *TokenRepo) Create(ctx context.Context, t *models.Token) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tokens (id, user_id, token, created_at)
		VALUES ($1, $2, $3, $4)
	`, t.ID, t.UserID, t.Value, t.CreatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByUser returns the user's token if one exists.
func (r *TokenRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Token, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token, created_at FROM tokens WHERE user_id = $1
	`, userID)
	return scanToken(row)
}

// GetByValue resolves a token value to its row.
func (r *TokenRepo) GetByValue(ctx context.Context, value string) (*models.Token, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, token, created_at FROM tokens WHERE token = $1
	`, value)
	return scanToken(row)
}
