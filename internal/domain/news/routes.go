package news

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// PublicRoutes returns the public news feed router.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPublic)
	return r
}

// AdminRoutes returns the admin news CRUD router.
func (h *Handler) AdminRoutes(adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/", h.ListAdmin)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
