package product

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/pkg/response"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListPublic handles GET /api/public/products. Only active products are
// returned, with categories normalized and the default tag filled in.
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListActive(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		response.InternalError(w, "Failed to fetch products")
		return
	}

	for i := range products {
		products[i].Category = NormalizeCategory(products[i].Category)
		if products[i].Tag == "" {
			products[i].Tag = DefaultTag
		}
	}

	response.OK(w, products)
}

// ListAdmin handles GET /api/admin/products
func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		response.InternalError(w, "Failed to fetch products")
		return
	}
	response.OK(w, products)
}

// Get handles GET /api/admin/products/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to get product")
		response.InternalError(w, "Failed to fetch product")
		return
	}

	response.OK(w, p)
}

// Create handles POST /api/admin/products
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, ok := buildProduct(uuid.New(), &req)
	if !ok {
		respondUpsertError(w, &req)
		return
	}
	p.CreatedAt = time.Now()

	if err := h.repo.Create(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("failed to create product")
		response.InternalError(w, "Failed to create product")
		return
	}

	response.Created(w, p)
}

// Update handles PUT /api/admin/products/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	var req UpsertRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, ok := buildProduct(id, &req)
	if !ok {
		respondUpsertError(w, &req)
		return
	}

	if err := h.repo.Update(r.Context(), p); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to update product")
		response.InternalError(w, "Failed to update product")
		return
	}

	response.OK(w, p)
}

// Delete handles DELETE /api/admin/products/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		log.Error().Err(err).Msg("failed to delete product")
		response.InternalError(w, "Failed to delete product")
		return
	}

	response.OK(w, map[string]bool{"deleted": true})
}

func buildProduct(id uuid.UUID, req *UpsertRequest) (*Product, bool) {
	price, ok := req.PriceInt()
	if !ok || req.Name == "" || req.Description == "" {
		return nil, false
	}

	tag := req.Tag
	if tag == "" {
		tag = DefaultTag
	}
	category := req.Category
	if category == "" {
		category = DefaultCategory
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Tag:         tag,
		Category:    category,
		Active:      active,
	}, true
}

func respondUpsertError(w http.ResponseWriter, req *UpsertRequest) {
	if _, ok := req.PriceInt(); !ok {
		response.BadRequest(w, "Price must be a non-negative integer")
		return
	}
	response.BadRequest(w, "Name and description are required")
}
