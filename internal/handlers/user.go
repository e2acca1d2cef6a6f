package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/plateful/recipe-backend/internal/middleware"
	"github.com/plateful/recipe-backend/internal/models"
	"github.com/plateful/recipe-backend/internal/services"
)

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateMeRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UserResponse is the wire shape of a user: email and name only. Neither
// the password nor the internal id appears.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func shapeUser(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// UserHandler serves registration, the token endpoint and the profile
// endpoint.
type UserHandler struct {
	users  *services.UserService
	tokens *services.TokenService
	log    *zap.Logger
}

func NewUserHandler(users *services.UserService, tokens *services.TokenService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, log: log}
}

// Create handles POST /user/create.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeUser(user))
}

// Token handles POST /user/token: validates credentials and returns the
// user's bearer token, creating it on first login.
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	fieldErrs := map[string][]string{}
	if req.Email == "" {
		fieldErrs["email"] = []string{"This field is required."}
	}
	if req.Password == "" {
		fieldErrs["password"] = []string{"This field is required."}
	}
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fieldErrs})
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Wrong password and unknown email look identical to the caller
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": map[string][]string{
				"non_field_errors": {"Unable to authenticate with provided credentials."},
			},
		})
		return
	}

	token, err := h.tokens.IssueOrFetch(r.Context(), user.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Me handles GET /user/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	writeJSON(w, http.StatusOK, shapeUser(user))
}

// UpdateMe handles PATCH /user/me, applying only the supplied fields.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req UpdateMeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user, services.ProfileUpdate{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeUser(updated))
}
