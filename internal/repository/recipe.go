package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/models"
)

// RecipeRepo persists recipes and their tag/ingredient relations. All reads
// and writes are scoped to the owning user; a miss on a row owned by someone
// else is indistinguishable from a missing row.
type RecipeRepo struct {
	db *sql.DB
}

func NewRecipeRepo(db *sql.DB) *RecipeRepo {
	return &RecipeRepo{db: db}
}

const recipeColumns = `id, created_at, updated_at, user_id, title, time_minutes, price, link`

func scanRecipe(s interface {
	Scan(dest ...any) error
}) (*models.Recipe, error) {
	var rec models.Recipe
	err := s.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt, &rec.UserID,
		&rec.Title, &rec.TimeMinutes, &rec.Price, &rec.Link)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	rec.TagIDs = []uuid.UUID{}
	rec.IngredientIDs = []uuid.UUID{}
	return &rec, nil
}

// ListByUser returns the user's recipes ordered by title descending, with
// relation ids filled in.
func (r *RecipeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recipeColumns+` FROM recipes
		WHERE user_id = $1 ORDER BY title DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		index[rec.ID] = len(recipes)
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Relation ids in two queries instead of one per recipe
	tagRows, err := r.db.QueryContext(ctx, `
		SELECT rt.recipe_id, rt.tag_id FROM recipe_tags rt
		JOIN recipes rec ON rec.id = rt.recipe_id
		WHERE rec.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var recipeID, tagID uuid.UUID
		if err := tagRows.Scan(&recipeID, &tagID); err != nil {
			return nil, err
		}
		if i, ok := index[recipeID]; ok {
			recipes[i].TagIDs = append(recipes[i].TagIDs, tagID)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	ingRows, err := r.db.QueryContext(ctx, `
		SELECT ri.recipe_id, ri.ingredient_id FROM recipe_ingredients ri
		JOIN recipes rec ON rec.id = ri.recipe_id
		WHERE rec.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var recipeID, ingredientID uuid.UUID
		if err := ingRows.Scan(&recipeID, &ingredientID); err != nil {
			return nil, err
		}
		if i, ok := index[recipeID]; ok {
			recipes[i].IngredientIDs = append(recipes[i].IngredientIDs, ingredientID)
		}
	}
	return recipes, ingRows.Err()
}

// GetByID returns a single recipe (relation ids only) owned by userID.
func (r *RecipeRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recipeColumns+` FROM recipes WHERE id = $1 AND user_id = $2
	`, id, userID)
	rec, err := scanRecipe(row)
	if err != nil {
		return nil, err
	}

	tagRows, err := r.db.QueryContext(ctx,
		`SELECT tag_id FROM recipe_tags WHERE recipe_id = $1`, rec.ID)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var tagID uuid.UUID
		if err := tagRows.Scan(&tagID); err != nil {
			return nil, err
		}
		rec.TagIDs = append(rec.TagIDs, tagID)
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	ingRows, err := r.db.QueryContext(ctx,
		`SELECT ingredient_id FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID)
	if err != nil {
		return nil, err
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var ingredientID uuid.UUID
		if err := ingRows.Scan(&ingredientID); err != nil {
			return nil, err
		}
		rec.IngredientIDs = append(rec.IngredientIDs, ingredientID)
	}
	return rec, ingRows.Err()
}

// GetDetail returns a recipe with tags and ingredients expanded to full
// objects, as served by the detail view.
func (r *RecipeRepo) GetDetail(ctx context.Context, userID, id uuid.UUID) (*models.RecipeDetail, error) {
	rec, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	detail := &models.RecipeDetail{Recipe: *rec, Tags: []models.Tag{}, Ingredients: []models.Ingredient{}}

	tagRows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.created_at, t.user_id, t.name FROM tags t
		JOIN recipe_tags rt ON rt.tag_id = t.id
		WHERE rt.recipe_id = $1 ORDER BY t.name DESC
	`, rec.ID)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var t models.Tag
		if err := tagRows.Scan(&t.ID, &t.CreatedAt, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		detail.Tags = append(detail.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	ingRows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.created_at, i.user_id, i.name FROM ingredients i
		JOIN recipe_ingredients ri ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = $1 ORDER BY i.name DESC
	`, rec.ID)
	if err != nil {
		return nil, err
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var ing models.Ingredient
		if err := ingRows.Scan(&ing.ID, &ing.CreatedAt, &ing.UserID, &ing.Name); err != nil {
			return nil, err
		}
		detail.Ingredients = append(detail.Ingredients, ing)
	}
	return detail, ingRows.Err()
}

// Create inserts the recipe row and its relation rows in one transaction.
// A relation referencing a nonexistent tag/ingredient surfaces as
// errs.ErrInvalidReference.
func (r *RecipeRepo) Create(ctx context.Context, rec *models.Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (id, created_at, updated_at, user_id, title, time_minutes, price, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.CreatedAt, rec.UpdatedAt, rec.UserID, rec.Title, rec.TimeMinutes, rec.Price, rec.Link)
	if err != nil {
		return err
	}

	if err := insertRelations(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the recipe row and replaces its relation rows with the
// ones on rec. The caller supplies the complete post-update state, so both
// full replace and partial update funnel through here.
func (r *RecipeRepo) Update(ctx context.Context, rec *models.Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE recipes SET title = $3, time_minutes = $4, price = $5, link = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`, rec.ID, rec.UserID, rec.Title, rec.TimeMinutes, rec.Price, rec.Link, rec.UpdatedAt)
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, rec.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, rec.ID); err != nil {
		return err
	}
	if err := insertRelations(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a recipe owned by userID; relation rows cascade.
func (r *RecipeRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = $1 AND user_id = $2`, id, userID)
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

func insertRelations(ctx context.Context, tx *sql.Tx, rec *models.Recipe) error {
	for _, tagID := range rec.TagIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2)`, rec.ID, tagID)
		if isForeignKeyViolation(err) {
			return errs.ErrInvalidReference
		}
		if err != nil {
			return err
		}
	}
	for _, ingredientID := range rec.IngredientIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES ($1, $2)`, rec.ID, ingredientID)
		if isForeignKeyViolation(err) {
			return errs.ErrInvalidReference
		}
		if err != nil {
			return err
		}
	}
	return nil
}
