package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/plateful/recipe-backend/internal/models"
)

// IngredientRepo persists user-owned ingredients.
type IngredientRepo struct {
	db *sql.DB
}

func NewIngredientRepo(db *sql.DB) *IngredientRepo {
	return &IngredientRepo{db: db}
}

// ListByUser returns the user's ingredients ordered by name descending.
func (r *IngredientRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, user_id, name FROM ingredients
		WHERE user_id = $1 ORDER BY name DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.CreatedAt, &ing.UserID, &ing.Name); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

// Create inserts an ingredient owned by ing.UserID.
func (r *IngredientRepo) Create(ctx context.Context, ing *models.Ingredient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingredients (id, created_at, user_id, name) VALUES ($1, $2, $3, $4)
	`, ing.ID, ing.CreatedAt, ing.UserID, ing.Name)
	return err
}
