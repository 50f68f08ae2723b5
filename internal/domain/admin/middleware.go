package admin

import (
	"context"
	"net/http"

	"github.com/skymarket/skymarket-api/internal/middleware"
	"github.com/skymarket/skymarket-api/internal/pkg/response"
	"github.com/skymarket/skymarket-api/internal/pkg/token"
)

// Auth validates the admin-token cookie and re-checks that the admin row
// still exists, so a deprovisioned admin is locked out immediately even with
// a valid unexpired token.
func Auth(tokens *token.Service, repo Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := token.FromRequest(r, token.RoleAdmin)
			if raw == "" {
				response.Unauthorized(w, "Admin access required")
				return
			}

			claims, err := tokens.VerifyRole(raw, token.RoleAdmin)
			if err != nil {
				response.Unauthorized(w, "Admin access required")
				return
			}

			if _, err := repo.GetByID(r.Context(), claims.SubjectID); err != nil {
				response.Unauthorized(w, "Admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), middleware.UserIDKey, claims.SubjectID)
			ctx = context.WithValue(ctx, middleware.RoleKey, string(token.RoleAdmin))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
