package upload

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/pkg/imaging"
	"github.com/skymarket/skymarket-api/internal/pkg/response"
	"github.com/skymarket/skymarket-api/internal/pkg/storage"
)

// maxUploadSize bounds a single image upload.
const maxUploadSize = 10 << 20 // 10 MB

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type Handler struct {
	store storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{store: store}
}

// Upload handles POST /api/admin/upload. Multipart field "file"; the image is
// validated by decoding and downscaled before storage.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "File too large or malformed upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		response.BadRequest(w, "Only jpeg, png, webp and gif images are accepted")
		return
	}

	processed, err := imaging.Process(file, contentType)
	if err != nil {
		response.BadRequest(w, "File is not a valid image")
		return
	}

	key := fmt.Sprintf("%d-%s.%s", time.Now().UnixMilli(), uuid.New(), processed.Ext)
	if err := h.store.Put(r.Context(), key, bytes.NewReader(processed.Data), processed.ContentType); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to store upload")
		response.InternalError(w, "Upload failed")
		return
	}

	log.Info().
		Str("key", key).
		Int("width", processed.Width).
		Int("height", processed.Height).
		Msg("image uploaded")

	response.OK(w, map[string]string{"url": h.store.URL(key)})
}
