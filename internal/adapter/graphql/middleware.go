package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware validates the bearer token from the Authorization header
// and resolves it to a user through the user repository.
// If the token is missing or unknown, the request is rejected with 401
// before any resolver runs. If valid, the user is placed on the request
// context.
func AuthMiddleware(userRepo domain.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, http.StatusUnauthorized, codeUnauthenticated, "missing authorization header")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				respondError(w, http.StatusUnauthorized, codeUnauthenticated, "malformed authorization header")
				return
			}

			user, err := userRepo.GetByAPIToken(r.Context(), token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, codeUnauthenticated, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user placed by AuthMiddleware
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// respondError sends a top-level (non-GraphQL) error response
func respondError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]interface{}{
			{
				"message":    message,
				"extensions": map[string]string{"code": code},
			},
		},
	})
}
