package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin console router, mounted under /api/admin. Product,
// news, settings and upload sub-routers are mounted by the caller so this
// package stays free of those dependencies.
func (h *Handler) Routes(adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/check", h.Check)

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/users", h.ListUsers)
		r.Post("/credits/add", h.AddCredits)
		r.Get("/login-logs", h.ListLoginLogs)
	})

	return r
}
