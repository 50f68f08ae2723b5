package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns the public settings router.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}

// AdminRoutes returns the admin settings router.
func (h *Handler) AdminRoutes(adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/", h.Get)
		r.Put("/", h.Put)
	})

	return r
}
