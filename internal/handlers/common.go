// Package handlers provides the HTTP layer over the catalog, saved,
// download, resource and account services.
package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"mathclasses-backend/pkg/api"
	appErrors "mathclasses-backend/pkg/errors"
)

// handleServiceError converts service errors to appropriate HTTP responses.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case appErrors.IsValidation(err):
		api.Error(w, http.StatusBadRequest, err.Error())
	case appErrors.IsNotFound(err):
		api.Error(w, http.StatusNotFound, err.Error())
	case appErrors.IsConflict(err):
		api.Error(w, http.StatusConflict, err.Error())
	case appErrors.IsUnavailable(err):
		logger.Warn("upstream unavailable", zap.Error(err))
		api.Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		// Full detail stays in the log, the client gets a generic message.
		logger.Error("internal error", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "An internal error occurred")
	}
}
