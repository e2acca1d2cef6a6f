package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/middleware"
	"github.com/plateful/recipe-backend/internal/models"
)

// RecipeStore is the persistence surface the recipe handler needs.
type RecipeStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Recipe, error)
	GetDetail(ctx context.Context, userID, id uuid.UUID) (*models.RecipeDetail, error)
	Create(ctx context.Context, rec *models.Recipe) error
	Update(ctx context.Context, rec *models.Recipe) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// RecipePayload is the decoded body of a recipe write. Pointers distinguish
// "omitted" from zero values, which is what makes PUT-clears-relations and
// PATCH-keeps-relations both expressible.
type RecipePayload struct {
	Title       *string       `json:"title"`
	TimeMinutes *int          `json:"time_minutes"`
	Price       *models.Price `json:"price"`
	Link        *string       `json:"link"`
	Tags        *[]uuid.UUID  `json:"tags"`
	Ingredients *[]uuid.UUID  `json:"ingredients"`
}

// validateRequired checks the fields every create/full-replace must carry.
func (p *RecipePayload) validateRequired() error {
	fieldErrs := errs.FieldErrors{}
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		fieldErrs.Add("title", "This field is required.")
	}
	if p.TimeMinutes == nil {
		fieldErrs.Add("time_minutes", "This field is required.")
	}
	if p.Price == nil {
		fieldErrs.Add("price", "This field is required.")
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}

// RecipeHandler serves the per-user recipe collection.
type RecipeHandler struct {
	recipes RecipeStore
	log     *zap.Logger
}

func NewRecipeHandler(recipes RecipeStore, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, log: log}
}

// recipeID parses the {id} URL parameter. A malformed id behaves like a
// missing row, not a validation failure.
func recipeID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.ErrNotFound
	}
	return id, nil
}

// List handles GET /recipe/recipes: summaries with relation ids, ordered by
// title descending.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	recipes, err := h.recipes.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Get handles GET /recipe/recipes/{id}: the detail view with expanded
// tag/ingredient objects.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	id, err := recipeID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	detail, err := h.recipes.GetDetail(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Create handles POST /recipe/recipes. Omitted relations default to empty.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var payload RecipePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := payload.validateRequired(); err != nil {
		writeError(w, h.log, err)
		return
	}

	now := time.Now()
	rec := models.Recipe{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		UserID:        user.ID,
		Title:         *payload.Title,
		TimeMinutes:   *payload.TimeMinutes,
		Price:         *payload.Price,
		TagIDs:        []uuid.UUID{},
		IngredientIDs: []uuid.UUID{},
	}
	if payload.Link != nil {
		rec.Link = *payload.Link
	}
	if payload.Tags != nil {
		rec.TagIDs = *payload.Tags
	}
	if payload.Ingredients != nil {
		rec.IngredientIDs = *payload.Ingredients
	}

	if err := h.recipes.Create(r.Context(), &rec); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// Put handles PUT /recipe/recipes/{id}: full replace. Required fields must
// all be present and omitted relations are cleared, not kept.
func (h *RecipeHandler) Put(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// Patch handles PATCH /recipe/recipes/{id}: only supplied fields change.
func (h *RecipeHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *RecipeHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	user := middleware.UserFrom(r.Context())

	id, err := recipeID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	// Ownership first: a missing or unowned id is a 404 even when the body
	// would not validate
	rec, err := h.recipes.GetByID(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var payload RecipePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, h.log, err)
		return
	}
	if !partial {
		if err := payload.validateRequired(); err != nil {
			writeError(w, h.log, err)
			return
		}
	}

	if payload.Title != nil {
		rec.Title = *payload.Title
	}
	if payload.TimeMinutes != nil {
		rec.TimeMinutes = *payload.TimeMinutes
	}
	if payload.Price != nil {
		rec.Price = *payload.Price
	}
	if payload.Link != nil {
		rec.Link = *payload.Link
	}
	if partial {
		if payload.Tags != nil {
			rec.TagIDs = *payload.Tags
		}
		if payload.Ingredients != nil {
			rec.IngredientIDs = *payload.Ingredients
		}
	} else {
		// Full replace: unlisted relations become empty
		rec.TagIDs = []uuid.UUID{}
		rec.IngredientIDs = []uuid.UUID{}
		if payload.Tags != nil {
			rec.TagIDs = *payload.Tags
		}
		if payload.Ingredients != nil {
			rec.IngredientIDs = *payload.Ingredients
		}
	}
	rec.UpdatedAt = time.Now()

	if err := h.recipes.Update(r.Context(), rec); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /recipe/recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	id, err := recipeID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if err := h.recipes.Delete(r.Context(), user.ID, id); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
