package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/plateful/recipe-backend/internal/errs"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON parses the request body into v. Malformed bodies (including
// wrong field types) come back as a single non-field validation error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.FieldErrors{"non_field_errors": {"Invalid request body."}}
	}
	return nil
}

// writeError maps service and store errors to the response taxonomy:
// validation -> 400 with an "errors" object, unauthenticated -> 401,
// missing/not-owned -> 404, anything else -> 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var fieldErrs errs.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fieldErrs})
	case errors.Is(err, errs.ErrInvalidReference):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": errs.FieldErrors{"non_field_errors": {"Invalid tag or ingredient reference."}},
		})
	case errors.Is(err, errs.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Authentication credentials were not provided.",
		})
	case errors.Is(err, errs.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	default:
		log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"detail": "Internal server error.",
		})
	}
}
