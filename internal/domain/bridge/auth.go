package bridge

import (
	"crypto/subtle"
	"net/http"

	"github.com/skymarket/skymarket-api/internal/pkg/response"
)

// APIKeyAuth guards the game-server endpoints with the shared X-API-Key
// header. No session cookies are involved on this boundary.
func APIKeyAuth(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("X-API-Key")
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				response.Unauthorized(w, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
