package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plateful/recipe-backend/internal/errs"
	"github.com/plateful/recipe-backend/internal/models"
	"github.com/plateful/recipe-backend/pkg/utils"
)

// MinPasswordLength applies to registration and profile updates. Superuser
// provisioning bypasses it.
const MinPasswordLength = 5

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
}

// UserService owns email normalization, password hashing and credential
// checks on top of the user store.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// NormalizeEmail lowercases the address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate carries the fields of a partial profile update; nil means
// "leave unchanged".
type ProfileUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

// Register creates a regular user. Validation failures come back as
// errs.FieldErrors; a taken email is reported as a field error as well.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	fieldErrs := errs.FieldErrors{}
	email = NormalizeEmail(email)
	if email == "" {
		fieldErrs.Add("email", "This field is required.")
	} else if !strings.Contains(email, "@") {
		fieldErrs.Add("email", "Enter a valid email address.")
	}
	if password == "" {
		fieldErrs.Add("password", "This field is required.")
	} else if len(password) < MinPasswordLength {
		fieldErrs.Add("password", "Ensure this field has at least 5 characters.")
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	return s.create(ctx, email, password, name, false)
}

// CreateSuperuser creates a staff/superuser account. The minimum password
// length is not enforced here; only a non-empty email and password are.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	fieldErrs := errs.FieldErrors{}
	email = NormalizeEmail(email)
	if email == "" {
		fieldErrs.Add("email", "This field is required.")
	}
	if password == "" {
		fieldErrs.Add("password", "This field is required.")
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	return s.create(ctx, email, password, "", true)
}

func (s *UserService) create(ctx context.Context, email, password, name string, super bool) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsStaff:      super,
		IsSuperuser:  super,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, errs.FieldErrors{"email": {"A user with this email already exists."}}
		}
		return nil, err
	}
	return user, nil
}

// Authenticate resolves credentials to a user. Unknown email and wrong
// password are indistinguishable: both return errs.ErrUnauthenticated.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUnauthenticated
		}
		return nil, err
	}
	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, errs.ErrUnauthenticated
	}
	return user, nil
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile applies only the supplied fields to user and persists the
// result. A supplied password is re-validated and re-hashed; a supplied
// email is re-normalized, with uniqueness re-checked by the store.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, upd ProfileUpdate) (*models.User, error) {
	fieldErrs := errs.FieldErrors{}

	updated := *user
	if upd.Email != nil {
		email := NormalizeEmail(*upd.Email)
		if email == "" {
			fieldErrs.Add("email", "This field is required.")
		} else if !strings.Contains(email, "@") {
			fieldErrs.Add("email", "Enter a valid email address.")
		}
		updated.Email = email
	}
	if upd.Name != nil {
		updated.Name = *upd.Name
	}
	if upd.Password != nil {
		if len(*upd.Password) < MinPasswordLength {
			fieldErrs.Add("password", "Ensure this field has at least 5 characters.")
		} else {
			hash, err := utils.HashPassword(*upd.Password)
			if err != nil {
				return nil, err
			}
			updated.PasswordHash = hash
		}
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	updated.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, errs.FieldErrors{"email": {"A user with this email already exists."}}
		}
		return nil, err
	}
	return &updated, nil
}
