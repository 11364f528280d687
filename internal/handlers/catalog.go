package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mathclasses-backend/internal/catalog"
	"mathclasses-backend/internal/download"
	"mathclasses-backend/internal/domain"
	"mathclasses-backend/pkg/api"
)

// CatalogHandler serves topic and resource reads plus download links.
type CatalogHandler struct {
	catalog  catalog.Service
	download download.Service
	logger   *zap.Logger
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(catalogService catalog.Service, downloadService download.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalogService,
		download: downloadService,
		logger:   logger,
	}
}

// ListTopics handles GET /api/topics
func (h *CatalogHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics := h.catalog.ListTopics(r.Context())
	api.Success(w, http.StatusOK, map[string][]domain.Topic{"topics": topics})
}

// GetTopic handles GET /api/topics/{topicID}
func (h *CatalogHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	topic, err := h.catalog.GetTopic(r.Context(), topicID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	api.Success(w, http.StatusOK, topic)
}

// ListTopicResources handles GET /api/topics/{topicID}/resources
func (h *CatalogHandler) ListTopicResources(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	resources := h.catalog.ListResourcesForTopic(r.Context(), topicID)
	api.Success(w, http.StatusOK, map[string][]domain.Resource{"resources": resources})
}

// ListRelatedTopics handles GET /api/topics/{topicID}/related
func (h *CatalogHandler) ListRelatedTopics(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")

	topics := h.catalog.ListRelatedTopics(r.Context(), topicID)
	api.Success(w, http.StatusOK, map[string][]domain.Topic{"topics": topics})
}

// DownloadResource handles GET /api/resources/{resourceID}/download
func (h *CatalogHandler) DownloadResource(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "resourceID")

	resource, err := h.catalog.GetResource(r.Context(), resourceID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	link := h.download.Link(r.Context(), resource.FilePath)
	api.Success(w, http.StatusOK, link)
}
