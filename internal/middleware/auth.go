package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/finledger/finledger/internal/auth"
	"github.com/finledger/finledger/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
	// userIDSlotKey carries a slot the auth middleware fills so that outer
	// middleware, which never sees the derived context, can still observe the
	// authenticated user after the handler returns.
	userIDSlotKey contextKey = "user_id_slot"
)

// GetUserID extracts the authenticated user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the authenticated user's email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// UserResolver resolves a token subject to a stored user.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth validates the Bearer token on every request, confirms the
// subject still exists, and adds the user's id and email to the request
// context. Every rejection cause gets the same response body.
func RequireAuth(tokens *auth.TokenManager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w)
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				writeUnauthorized(w)
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			if slot, ok := r.Context().Value(userIDSlotKey).(*string); ok {
				*slot = user.ID
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, EmailKey, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"invalid or expired token"}`))
}
