package middleware

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/pkg/response"
	"github.com/skymarket/skymarket-api/internal/ratelimit"
)

// RateLimit applies the per-(IP, route) fixed-window limiter to every request.
// A store failure lets the request through.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Check(r.Context(), getClientIP(r), r.URL.Path)
			if err != nil {
				log.Error().Err(err).Str("path", r.URL.Path).Msg("Rate limit check failed")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				retryAfter := res.RetryAfter()
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.RateLimited(w, retryAfter)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
