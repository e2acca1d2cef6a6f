package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/plateful/recipe-backend/internal/models"
)

// TagRepo persists user-owned tags.
type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo {
	return &TagRepo{db: db}
}

// ListByUser returns the user's tags ordered by name descending.
func (r *TagRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, user_id, name FROM tags
		WHERE user_id = $1 ORDER BY name DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.CreatedAt, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// Create inserts a tag owned by t.UserID.
func (r *TagRepo) Create(ctx context.Context, t *models.Tag) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tags (id, created_at, user_id, name) VALUES ($1, $2, $3, $4)
	`, t.ID, t.CreatedAt, t.UserID, t.Name)
	return err
}
