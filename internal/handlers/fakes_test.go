package handlers

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/models"
	"github.com/plateful/recipe-backend/internal/services"
)

type fakeUserStore struct {
	byID map[uuid.UUID]*models.User
}

var _ services.UserStore = (*fakeUserStore)(nil)

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return errs.ErrAlreadyExists
		}
	}
	cpy := *u
	f.byID[u.ID] = &cpy
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (f *fakeUserStore) Update(_ context.Context, u *models.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return errs.ErrNotFound
	}
	for id, existing := range f.byID {
		if id != u.ID && existing.Email == u.Email {
			return errs.ErrAlreadyExists
		}
	}
	cpy := *u
	f.byID[u.ID] = &cpy
	return nil
}

type fakeTokenStore struct {
	byUser map[uuid.UUID]*models.Token
}

var _ services.TokenStore = (*fakeTokenStore)(nil)

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{byUser: map[uuid.UUID]*models.Token{}}
}

func (f *fakeTokenStore) Create(_ context.Context, t *models.Token) error {
	if _, exists := f.byUser[t.UserID]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *t
	f.byUser[t.UserID] = &cpy
	return nil
}

func (f *fakeTokenStore) GetByUser(_ context.Context, userID uuid.UUID) (*models.Token, error) {
	t, ok := f.byUser[userID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *t
	return &cpy, nil
}

func (f *fakeTokenStore) GetByValue(_ context.Context, value string) (*models.Token, error) {
	for _, t := range f.byUser {
		if t.Value == value {
			cpy := *t
			return &cpy, nil
		}
	}
	return nil, errs.ErrNotFound
}

type fakeTagStore struct {
	tags []models.Tag
}

var _ TagStore = (*fakeTagStore)(nil)

func (f *fakeTagStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Tag, error) {
	out := []models.Tag{}
	for _, t := range f.tags {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (f *fakeTagStore) Create(_ context.Context, t *models.Tag) error {
	f.tags = append(f.tags, *t)
	return nil
}

type fakeIngredientStore struct {
	ingredients []models.Ingredient
}

var _ IngredientStore = (*fakeIngredientStore)(nil)

func (f *fakeIngredientStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Ingredient, error) {
	out := []models.Ingredient{}
	for _, ing := range f.ingredients {
		if ing.UserID == userID {
			out = append(out, ing)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (f *fakeIngredientStore) Create(_ context.Context, ing *models.Ingredient) error {
	f.ingredients = append(f.ingredients, *ing)
	return nil
}

// fakeRecipeStore mirrors the repository's owner scoping and relation
// replacement so handler semantics can be exercised end to end in memory.
type fakeRecipeStore struct {
	recipes     map[uuid.UUID]*models.Recipe
	tags        map[uuid.UUID]models.Tag
	ingredients map[uuid.UUID]models.Ingredient
}

var _ RecipeStore = (*fakeRecipeStore)(nil)

func newFakeRecipeStore() *fakeRecipeStore {
	return &fakeRecipeStore{
		recipes:     map[uuid.UUID]*models.Recipe{},
		tags:        map[uuid.UUID]models.Tag{},
		ingredients: map[uuid.UUID]models.Ingredient{},
	}
}

func (f *fakeRecipeStore) addTag(t models.Tag)               { f.tags[t.ID] = t }
func (f *fakeRecipeStore) addIngredient(i models.Ingredient) { f.ingredients[i.ID] = i }

func (f *fakeRecipeStore) checkRefs(rec *models.Recipe) error {
	for _, id := range rec.TagIDs {
		if _, ok := f.tags[id]; !ok {
			return errs.ErrInvalidReference
		}
	}
	for _, id := range rec.IngredientIDs {
		if _, ok := f.ingredients[id]; !ok {
			return errs.ErrInvalidReference
		}
	}
	return nil
}

func (f *fakeRecipeStore) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	out := []models.Recipe{}
	for _, rec := range f.recipes {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title > out[j].Title })
	return out, nil
}

func (f *fakeRecipeStore) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Recipe, error) {
	rec, ok := f.recipes[id]
	if !ok || rec.UserID != userID {
		return nil, errs.ErrNotFound
	}
	cpy := *rec
	return &cpy, nil
}

func (f *fakeRecipeStore) GetDetail(ctx context.Context, userID, id uuid.UUID) (*models.RecipeDetail, error) {
	rec, err := f.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	detail := &models.RecipeDetail{Recipe: *rec, Tags: []models.Tag{}, Ingredients: []models.Ingredient{}}
	for _, tagID := range rec.TagIDs {
		detail.Tags = append(detail.Tags, f.tags[tagID])
	}
	for _, ingredientID := range rec.IngredientIDs {
		detail.Ingredients = append(detail.Ingredients, f.ingredients[ingredientID])
	}
	return detail, nil
}

func (f *fakeRecipeStore) Create(_ context.Context, rec *models.Recipe) error {
	if err := f.checkRefs(rec); err != nil {
		return err
	}
	cpy := *rec
	f.recipes[rec.ID] = &cpy
	return nil
}

func (f *fakeRecipeStore) Update(_ context.Context, rec *models.Recipe) error {
	existing, ok := f.recipes[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return errs.ErrNotFound
	}
	if err := f.checkRefs(rec); err != nil {
		return err
	}
	cpy := *rec
	f.recipes[rec.ID] = &cpy
	return nil
}

func (f *fakeRecipeStore) Delete(_ context.Context, userID, id uuid.UUID) error {
	rec, ok := f.recipes[id]
	if !ok || rec.UserID != userID {
		return errs.ErrNotFound
	}
	delete(f.recipes, id)
	return nil
}
