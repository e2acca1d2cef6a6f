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

// TagStore is the persistence surface the tag handler needs.
type TagStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Tag, error)
	Create(ctx context.Context, t *models.Tag) error
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

// TagHandler serves the per-user tag collection.
type TagHandler struct {
	tags TagStore
	log  *zap.Logger
}

func NewTagHandler(tags TagStore, log *zap.Logger) *TagHandler {
	return &TagHandler{tags: tags, log: log}
}

// List handles GET /recipe/tags, ordered by name descending.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	tags, err := h.tags.ListByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// Create handles POST /recipe/tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req CreateTagRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, h.log, errs.Required("name"))
		return
	}

	tag := models.Tag{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		UserID:    user.ID,
		Name:      req.Name,
	}
	if err := h.tags.Create(r.Context(), &tag); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}
