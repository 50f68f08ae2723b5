package credit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MarketRoutes returns the purchase router, mounted under /api/market.
func (h *Handler) MarketRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/purchase", h.Purchase)
	})

	return r
}

// Routes returns the credits router, mounted under /api/credits.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/balance", h.Balance)
		r.Get("/history", h.History)
	})

	return r
}
