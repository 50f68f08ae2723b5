package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/skymarket/skymarket-api/internal/pkg/response"
	"github.com/skymarket/skymarket-api/internal/pkg/token"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// UserAuth validates the user-token cookie and puts the subject on the
// request context. Admin routes use the admin domain's own middleware, which
// additionally re-checks that the admin still exists.
func UserAuth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := token.FromRequest(r, token.RoleUser)
			if raw == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}

			claims, err := tokens.VerifyRole(raw, token.RoleUser)
			if err != nil {
				if err == token.ErrExpiredToken {
					response.Unauthorized(w, "Session expired")
				} else {
					response.Unauthorized(w, "Invalid session")
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.SubjectID)
			ctx = context.WithValue(ctx, RoleKey, string(claims.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user ID from context.
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetRole extracts the session role from context.
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(RoleKey).(string); ok {
		return role
	}
	return ""
}
