package settings

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/domain/news"
	"github.com/skymarket/skymarket-api/internal/domain/product"
	"github.com/skymarket/skymarket-api/internal/pkg/response"
)

const (
	homeProducts = 6
	homeNews     = 3
)

// HomeResponse aggregates everything the landing page needs in one call.
type HomeResponse struct {
	Settings map[string]string `json:"settings"`
	Products []product.Product `json:"products"`
	News     []news.News       `json:"news"`
}

type Handler struct {
	repo     Repository
	products product.Repository
	newsRepo news.Repository
}

func NewHandler(repo Repository, products product.Repository, newsRepo news.Repository) *Handler {
	return &Handler{repo: repo, products: products, newsRepo: newsRepo}
}

// Get handles GET /api/public/settings and GET /api/admin/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")
		response.InternalError(w, "Failed to fetch settings")
		return
	}
	response.OK(w, all)
}

// Put handles PUT /api/admin/settings. Each pair in the body is upserted;
// non-string values are stringified.
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := response.DecodeJSON(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	for key, value := range body {
		str, ok := value.(string)
		if !ok {
			str = fmt.Sprintf("%v", value)
		}
		if err := h.repo.Upsert(r.Context(), key, str); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to upsert setting")
			response.InternalError(w, "Failed to update settings")
			return
		}
	}

	response.OK(w, map[string]bool{"updated": true})
}

// Home handles GET /api/public/home
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	all, err := h.repo.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load settings")
		response.InternalError(w, "Failed to fetch data")
		return
	}

	products, err := h.products.ListActive(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load products")
		response.InternalError(w, "Failed to fetch data")
		return
	}
	if len(products) > homeProducts {
		products = products[:homeProducts]
	}
	for i := range products {
		products[i].Category = product.NormalizeCategory(products[i].Category)
		if products[i].Tag == "" {
			products[i].Tag = product.DefaultTag
		}
	}

	posts, err := h.newsRepo.List(r.Context(), homeNews)
	if err != nil {
		log.Error().Err(err).Msg("failed to load news")
		response.InternalError(w, "Failed to fetch data")
		return
	}

	response.OK(w, HomeResponse{
		Settings: all,
		Products: products,
		News:     posts,
	})
}
