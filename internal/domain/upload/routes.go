package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the admin upload router.
func (h *Handler) AdminRoutes(adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Post("/", h.Upload)
	})

	return r
}
