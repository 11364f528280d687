// Package download turns stored file references into time-limited retrieval
// URLs. Issuance failures degrade to a placeholder URL so the presentation
// layer always receives a usable value; the result carries a flag so callers
// can still detect the degraded case.
package download

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"mathclasses-backend/internal/observability"
	"mathclasses-backend/internal/repository"
)

// PlaceholderBase is the prefix of every degraded download URL. Callers can
// match on it in addition to the Fallback flag.
const PlaceholderBase = "https://placeholder-file-download.com/"

// Link is the issuance result: either a signed URL or a tagged placeholder.
type Link struct {
	URL      string `json:"url"`
	Fallback bool   `json:"fallback"`
}

// Service mints download links for stored file references.
type Service interface {
	// Link returns a retrieval URL for the file reference, valid for the
	// configured window. Never fails: on issuance failure the returned link
	// is the placeholder form with Fallback set.
	Link(ctx context.Context, filePath string) Link
}

type service struct {
	store   repository.FileStore
	ttl     time.Duration
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewService creates a download service issuing URLs valid for ttl.
// The metrics collector may be nil.
func NewService(store repository.FileStore, ttl time.Duration, logger *zap.Logger, metrics *observability.Collector) Service {
	return &service{
		store:   store,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *service) Link(ctx context.Context, filePath string) Link {
	url, err := s.store.SignedURL(ctx, filePath, s.ttl)
	if err != nil {
		s.logger.Warn("signed URL issuance failed, returning placeholder",
			zap.String("file_path", filePath),
			zap.Error(err),
		)
		s.metrics.RecordDownload(true)
		return Link{
			URL:      PlaceholderBase + strings.TrimPrefix(filePath, "/"),
			Fallback: true,
		}
	}
	s.metrics.RecordDownload(false)
	return Link{URL: url}
}
