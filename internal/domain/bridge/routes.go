package bridge

import "github.com/go-chi/chi/v5"

// Routes returns the game-server router, mounted under /api/mc. Every route
// requires the shared API key.
func (h *Handler) Routes(apiKey string) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(apiKey))
		r.Get("/pending", h.Pending)
		r.Post("/execute", h.Execute)
		r.Post("/verify", h.Verify)
	})

	return r
}
