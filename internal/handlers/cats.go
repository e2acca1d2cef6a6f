package handlers

import (
	"net/http"

	"github.com/plateful/recipe-backend/internal/errs"
)

type GreetRequest struct {
	Name string `json:"name"`
}

// Hello handles GET /cats/hello.
func Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "meow"})
}

// Greet handles POST /cats/greet: echoes a greeting for the supplied name,
// or a 400 with an "errors" object when it is missing.
func Greet(w http.ResponseWriter, r *http.Request) {
	var req GreetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": errs.FieldErrors{"non_field_errors": {"Invalid request body."}},
		})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs.Required("name")})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"greeting": "hello " + req.Name})
}
