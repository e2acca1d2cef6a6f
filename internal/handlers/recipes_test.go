package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plateful/recipe-backend/internal/models"
)

// recipeRouter mounts the recipe routes with every request authenticated as
// user, mirroring the production route table.
func recipeRouter(h *RecipeHandler, user *models.User) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, asUser(req, user))
		})
	})
	r.Get("/recipe/recipes", h.List)
	r.Post("/recipe/recipes", h.Create)
	r.Get("/recipe/recipes/{id}", h.Get)
	r.Put("/recipe/recipes/{id}", h.Put)
	r.Patch("/recipe/recipes/{id}", h.Patch)
	r.Delete("/recipe/recipes/{id}", h.Delete)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func TestRecipeCreateDefaultsRelationsToEmpty(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	rec := doJSON(t, router, http.MethodPost, "/recipe/recipes",
		`{"title":"Chocolate cake","time_minutes":30,"price":"5.00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Chocolate cake", body["title"])
	require.Equal(t, float64(30), body["time_minutes"])
	require.Equal(t, "5.00", body["price"])
	require.Equal(t, []any{}, body["tags"])
	require.Equal(t, []any{}, body["ingredients"])
}

func TestRecipeCreateMissingRequiredFieldsIs400(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	rec := doJSON(t, router, http.MethodPost, "/recipe/recipes", `{"title":"No price"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["errors"], "time_minutes")
	require.Contains(t, body["errors"], "price")
	require.Empty(t, store.recipes)
}

func TestRecipeCreateMalformedPriceIs400(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	rec := doJSON(t, router, http.MethodPost, "/recipe/recipes",
		`{"title":"Bad","time_minutes":10,"price":"not-a-number"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, store.recipes)
}

func TestRecipeRoundTripExpandsRelationsInDetail(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	tag := models.Tag{ID: uuid.New(), UserID: owner.ID, Name: "dessert", CreatedAt: time.Now()}
	ingredient := models.Ingredient{ID: uuid.New(), UserID: owner.ID, Name: "sugar", CreatedAt: time.Now()}
	store.addTag(tag)
	store.addIngredient(ingredient)
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	payload := fmt.Sprintf(`{"title":"Cake","time_minutes":30,"price":"5.00","tags":[%q],"ingredients":[%q]}`,
		tag.ID, ingredient.ID)
	rec := doJSON(t, router, http.MethodPost, "/recipe/recipes", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, []any{tag.ID.String()}, created["tags"])

	rec = doJSON(t, router, http.MethodGet, "/recipe/recipes/"+created["id"].(string), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Tags        []map[string]any `json:"tags"`
		Ingredients []map[string]any `json:"ingredients"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Tags, 1)
	require.Equal(t, "dessert", detail.Tags[0]["name"])
	require.Equal(t, tag.ID.String(), detail.Tags[0]["id"])
	require.Len(t, detail.Ingredients, 1)
	require.Equal(t, "sugar", detail.Ingredients[0]["name"])
}

func seedRecipe(store *fakeRecipeStore, owner *models.User, title string, tagIDs []uuid.UUID) *models.Recipe {
	rec := &models.Recipe{
		ID:            uuid.New(),
		UserID:        owner.ID,
		Title:         title,
		TimeMinutes:   10,
		TagIDs:        tagIDs,
		IngredientIDs: []uuid.UUID{},
	}
	store.recipes[rec.ID] = rec
	return rec
}

func TestRecipePutOmittingTagsClearsThem(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	tag := models.Tag{ID: uuid.New(), UserID: owner.ID, Name: "dessert"}
	store.addTag(tag)
	existing := seedRecipe(store, owner, "Cake", []uuid.UUID{tag.ID})
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	rec := doJSON(t, router, http.MethodPut, "/recipe/recipes/"+existing.ID.String(),
		`{"title":"Plain cake","time_minutes":20,"price":"3.50"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Plain cake", body["title"])
	require.Equal(t, []any{}, body["tags"])
	require.Empty(t, store.recipes[existing.ID].TagIDs)
}

func TestRecipePutMissingRequiredFieldIs400(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	existing := seedRecipe(store, owner, "Cake", []uuid.UUID{})
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	rec := doJSON(t, router, http.MethodPut, "/recipe/recipes/"+existing.ID.String(),
		`{"title":"Only title"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Cake", store.recipes[existing.ID].Title)
}

func TestRecipePatchOmittingTagsKeepsThem(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	tag := models.Tag{ID: uuid.New(), UserID: owner.ID, Name: "dessert"}
	store.addTag(tag)
	existing := seedRecipe(store, owner, "Cake", []uuid.UUID{tag.ID})
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	rec := doJSON(t, router, http.MethodPatch, "/recipe/recipes/"+existing.ID.String(),
		`{"title":"Renamed cake"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Renamed cake", store.recipes[existing.ID].Title)
	require.Equal(t, []uuid.UUID{tag.ID}, store.recipes[existing.ID].TagIDs)
}

func TestRecipeOfAnotherUserIs404(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	stranger := &models.User{ID: uuid.New()}
	existing := seedRecipe(store, owner, "Secret cake", []uuid.UUID{})
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), stranger)

	for _, tc := range []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"title":"x","time_minutes":1,"price":"1.00"}`},
		{http.MethodPatch, `{"title":"x"}`},
		{http.MethodDelete, ""},
	} {
		rec := doJSON(t, router, tc.method, "/recipe/recipes/"+existing.ID.String(), tc.body)
		require.Equal(t, http.StatusNotFound, rec.Code, tc.method)
	}
}

func TestRecipePutUnownedIDWithIncompleteBodyIs404(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	stranger := &models.User{ID: uuid.New()}
	existing := seedRecipe(store, owner, "Secret cake", []uuid.UUID{})
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), stranger)

	// Missing ownership wins over missing required fields
	rec := doJSON(t, router, http.MethodPut, "/recipe/recipes/"+existing.ID.String(),
		`{"title":"Only title"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecipeListIsScopedAndOrderedByTitleDesc(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	other := &models.User{ID: uuid.New()}
	seedRecipe(store, owner, "Apple pie", []uuid.UUID{})
	seedRecipe(store, owner, "Zucchini bread", []uuid.UUID{})
	seedRecipe(store, other, "Not yours", []uuid.UUID{})
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	rec := doJSON(t, router, http.MethodGet, "/recipe/recipes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	require.Equal(t, "Zucchini bread", body[0]["title"])
	require.Equal(t, "Apple pie", body[1]["title"])
}

func TestRecipeDelete(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	existing := seedRecipe(store, owner, "Cake", []uuid.UUID{})
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	rec := doJSON(t, router, http.MethodDelete, "/recipe/recipes/"+existing.ID.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/recipe/recipes/"+existing.ID.String(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecipeCreateWithUnknownTagIs400(t *testing.T) {
	store := newFakeRecipeStore()
	owner := &models.User{ID: uuid.New()}
	router := recipeRouter(NewRecipeHandler(store, zap.NewNop()), owner)

	payload := fmt.Sprintf(`{"title":"Cake","time_minutes":30,"price":"5.00","tags":[%q]}`, uuid.New())
	rec := doJSON(t, router, http.MethodPost, "/recipe/recipes", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
