package news

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/pkg/response"
	"github.com/skymarket/skymarket-api/internal/pkg/validator"
)

type UpsertRequest struct {
	Title    string  `json:"title" validate:"required,max=200"`
	Excerpt  string  `json:"excerpt" validate:"required,max=500"`
	Content  string  `json:"content" validate:"required"`
	Tag      string  `json:"tag" validate:"required,max=50"`
	ImageURL *string `json:"imageUrl"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListPublic handles GET /api/public/news
func (h *Handler) ListPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context(), 0)
	if err != nil {
		log.Error().Err(err).Msg("failed to list news")
		response.InternalError(w, "Failed to fetch news")
		return
	}
	response.OK(w, items)
}

// ListAdmin handles GET /api/admin/news
func (h *Handler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	h.ListPublic(w, r)
}

// Get handles GET /api/admin/news/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid news ID")
		return
	}

	n, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "News not found")
			return
		}
		log.Error().Err(err).Msg("failed to get news")
		response.InternalError(w, "Failed to fetch news")
		return
	}

	response.OK(w, n)
}

// Create handles POST /api/admin/news
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	n := &News{
		ID:        uuid.New(),
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Tag:       req.Tag,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now(),
	}
	if err := h.repo.Create(r.Context(), n); err != nil {
		log.Error().Err(err).Msg("failed to create news")
		response.InternalError(w, "Failed to create news")
		return
	}

	response.Created(w, n)
}

// Update handles PUT /api/admin/news/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid news ID")
		return
	}

	var req UpsertRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	n := &News{
		ID:       id,
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		Tag:      req.Tag,
		ImageURL: req.ImageURL,
	}
	if err := h.repo.Update(r.Context(), n); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "News not found")
			return
		}
		log.Error().Err(err).Msg("failed to update news")
		response.InternalError(w, "Failed to update news")
		return
	}

	response.OK(w, n)
}

// Delete handles DELETE /api/admin/news/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid news ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "News not found")
			return
		}
		log.Error().Err(err).Msg("failed to delete news")
		response.InternalError(w, "Failed to delete news")
		return
	}

	response.OK(w, map[string]bool{"deleted": true})
}
