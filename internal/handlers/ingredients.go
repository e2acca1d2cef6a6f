package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/middleware"
	"github.com/plateful/recipe-backend/internal/models"
)

// IngredientStore is the persistence surface the ingredient handler needs.
type IngredientStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Ingredient, error)
	Create(ctx context.Context, ing *models.Ingredient) error
}

type CreateIngredientRequest struct {
	Name string `json:"name"`
}

// IngredientHandler serves the per-user ingredient collection.
type IngredientHandler struct {
	ingredients IngredientStore
	log         *zap.Logger
}

func NewIngredientHandler(ingredients IngredientStore, log *zap.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients, log: log}
}

// List handles GET /recipe/ingredients, ordered by name descending.
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	ingredients, err := h.ingredients.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

// Create handles POST /recipe/ingredients.
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req CreateIngredientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, h.log, errs.Required("name"))
		return
	}

	ingredient := models.Ingredient{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		UserID:    user.ID,
		Name:      req.Name,
	}
	if err := h.ingredients.Create(r.Context(), &ingredient); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, ingredient)
}
