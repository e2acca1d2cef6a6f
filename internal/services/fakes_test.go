package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/models"
)

type fakeUserStore struct {
	byID map[uuid.UUID]*models.User
}

var _ UserStore = (*fakeUserStore)(nil)

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

	createErr error
	getMisses int // number of GetByUser calls to answer with ErrNotFound
}

var _ TokenStore = (*fakeTokenStore)(nil)

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{byUser: map[uuid.UUID]*models.Token{}}
}

func (f *fakeTokenStore) Create(_ context.Context, t *models.Token) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byUser[t.UserID]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *t
	f.byUser[t.UserID] = &cpy
	return nil
}

func (f *fakeTokenStore) GetByUser(_ context.Context, userID uuid.UUID) (*models.Token, error) {
	if f.getMisses > 0 {
		f.getMisses--
		return nil, errs.ErrNotFound
	}
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
