package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mathclasses-backend/internal/resources"
	"mathclasses-backend/pkg/api"
)

// ResourceHandler serves resource uploads and deletions for staff tooling.
type ResourceHandler struct {
	resources     resources.Service
	maxUploadSize int64
	logger        *zap.Logger
}

// NewResourceHandler creates a resource handler.
func NewResourceHandler(resourceService resources.Service, maxUploadSize int64, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{
		resources:     resourceService,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Create handles POST /api/resources as a multipart form with fields
// topic_id, title, description and a file part named file.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	resource, err := h.resources.Upload(r.Context(), resources.UploadInput{
		TopicID:     r.FormValue("topic_id"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		FileName:    header.Filename,
		FileSize:    header.Size,
		Data:        file,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	api.Success(w, http.StatusCreated, resource)
}

// Delete handles DELETE /api/resources/{resourceID}
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "resourceID")

	if err := h.resources.Delete(r.Context(), resourceID); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	api.Success(w, http.StatusNoContent, nil)
}
