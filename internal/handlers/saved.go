package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"mathclasses-backend/internal/saved"
	"mathclasses-backend/pkg/api"
	"mathclasses-backend/pkg/auth"
)

// SavedHandler serves per-user saved resource state. Every route requires an
// authenticated caller; the user ID always comes from the verified token,
// never from the request body.
type SavedHandler struct {
	saved  saved.Service
	logger *zap.Logger
}

// NewSavedHandler creates a saved resources handler.
func NewSavedHandler(savedService saved.Service, logger *zap.Logger) *SavedHandler {
	return &SavedHandler{saved: savedService, logger: logger}
}

// List handles GET /api/saved
func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ids := h.saved.ListSavedResourceIDs(r.Context(), user.ID)
	api.Success(w, http.StatusOK, map[string][]string{"resourceIds": ids})
}

// Get handles GET /api/saved/{resourceID}
func (h *SavedHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	resourceID := chi.URLParam(r, "resourceID")
	isSaved := h.saved.IsSaved(r.Context(), user.ID, resourceID)
	api.Success(w, http.StatusOK, map[string]bool{"saved": isSaved})
}

// Toggle handles POST /api/saved/{resourceID}/toggle
func (h *SavedHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	resourceID := chi.URLParam(r, "resourceID")
	nowSaved, err := h.saved.Toggle(r.Context(), user.ID, resourceID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	api.Success(w, http.StatusOK, map[string]bool{"saved": nowSaved})
}
