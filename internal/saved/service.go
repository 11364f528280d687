// Package saved maintains per-account resource bookmarks with toggle
// semantics. Read paths are fail-closed: a lookup error is reported as "not
// saved" or an empty set, never as an error. Toggle is the only operation
// that surfaces failures, since no fallback can satisfy a write.
package saved

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"mathclasses-backend/internal/observability"
	"mathclasses-backend/internal/repository"
	appErrors "mathclasses-backend/pkg/errors"
)

// Service defines the saved-resource operations consumed by the HTTP layer.
type Service interface {
	// IsSaved reports whether the account has the resource saved. Lookup
	// errors read as false; callers cannot distinguish "not saved" from
	// "could not determine". Documented trade-off, applied uniformly here
	// and in ListSavedResourceIDs.
	IsSaved(ctx context.Context, userID, resourceID string) bool

	// Toggle inverts the saved state of the pair and reports the new state.
	// A racing duplicate insert is treated as "already saved", not an error.
	Toggle(ctx context.Context, userID, resourceID string) (bool, error)

	// ListSavedResourceIDs returns every resource the account has saved,
	// sorted for deterministic output. Empty on any lookup failure.
	ListSavedResourceIDs(ctx context.Context, userID string) []string
}

type service struct {
	repo    repository.SavedResourceRepository
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewService creates a saved-resource service. The metrics collector may be nil.
func NewService(repo repository.SavedResourceRepository, logger *zap.Logger, metrics *observability.Collector) Service {
	return &service{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *service) IsSaved(ctx context.Context, userID, resourceID string) bool {
	exists, err := s.repo.Exists(ctx, userID, resourceID)
	if err != nil {
		s.logger.Warn("saved-state lookup failed, reporting not saved",
			zap.String("user_id", userID),
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
		return false
	}
	return exists
}

func (s *service) Toggle(ctx context.Context, userID, resourceID string) (bool, error) {
	if userID == "" || resourceID == "" {
		return false, appErrors.NewValidation("user and resource identifiers are required")
	}

	exists, err := s.repo.Exists(ctx, userID, resourceID)
	if err != nil {
		return false, appErrors.NewUnavailable("could not determine saved state", err)
	}

	if exists {
		if err := s.repo.Delete(ctx, userID, resourceID); err != nil {
			return false, appErrors.NewUnavailable("could not unsave resource", err)
		}
		s.metrics.RecordToggle(false)
		return false, nil
	}

	if err := s.repo.Insert(ctx, userID, resourceID); err != nil {
		// The uniqueness constraint is the backstop against a racing double
		// insert; losing that race means the resource is already saved.
		if repository.IsConflict(err) {
			s.logger.Debug("concurrent save detected, treating as saved",
				zap.String("user_id", userID),
				zap.String("resource_id", resourceID),
			)
			return true, nil
		}
		return false, appErrors.NewUnavailable("could not save resource", err)
	}
	s.metrics.RecordToggle(true)
	return true, nil
}

func (s *service) ListSavedResourceIDs(ctx context.Context, userID string) []string {
	ids, err := s.repo.ListResourceIDs(ctx, userID)
	if err != nil {
		s.logger.Warn("saved-resource listing failed, reporting empty set",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return []string{}
	}
	sort.Strings(ids)
	return ids
}
