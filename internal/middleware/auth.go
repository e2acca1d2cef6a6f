package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/plateful/recipe-backend/internal/models"
)

type contextKey int

const userContextKey contextKey = iota

// TokenResolver resolves an opaque token value to a user.
type TokenResolver interface {
	Resolve(ctx context.Context, value string) (*models.User, error)
}

// extractToken pulls the value out of an "Authorization: Token <value>"
// header, returning "" for any other shape.
func extractToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth rejects requests without a resolvable token with a bare 401
// and attaches the resolved user to the request context otherwise.
func RequireAuth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthenticated(w)
				return
			}
			user, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				unauthenticated(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the authenticated user attached by RequireAuth, or nil.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"detail": "Authentication credentials were not provided.",
	})
}
