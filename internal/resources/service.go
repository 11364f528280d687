// Package resources implements the administrative upload and delete
// operations for downloadable resources. Both are two-step sequences across
// the blob store and the relational store with no spanning transaction, so
// each compensates manually when the second step fails.
package resources

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mathclasses-backend/internal/domain"
	"mathclasses-backend/internal/repository"
	appErrors "mathclasses-backend/pkg/errors"
)

// UploadInput carries everything needed to publish a new resource.
type UploadInput struct {
	TopicID     string
	Title       string
	Description string
	FileName    string
	FileSize    int64
	Data        io.Reader
}

// Service defines the admin operations on resources.
type Service interface {
	// Upload writes the file to blob storage, then inserts the resource row.
	// If the row insert fails the uploaded blob is removed again.
	Upload(ctx context.Context, input UploadInput) (*domain.Resource, error)

	// Delete removes the resource's blob, then its row. The blob is deleted
	// first so a half-finished delete leaves a dangling row rather than an
	// orphaned file.
	Delete(ctx context.Context, resourceID string) error
}

type service struct {
	repo   repository.CatalogRepository
	store  repository.FileStore
	logger *zap.Logger
}

// NewService creates a resource admin service.
func NewService(repo repository.CatalogRepository, store repository.FileStore, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.Resource, error) {
	if input.TopicID == "" {
		return nil, appErrors.NewValidation("topic identifier is required")
	}
	if input.Title == "" {
		return nil, appErrors.NewValidation("title is required")
	}
	if input.Data == nil {
		return nil, appErrors.NewValidation("file data is required")
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(input.FileName), "."))
	if ext == "" {
		ext = "unknown"
	}
	filePath := fmt.Sprintf("%s/%s.%s", input.TopicID, uuid.New().String(), ext)

	if err := s.store.Upload(ctx, filePath, input.Data); err != nil {
		return nil, appErrors.NewUnavailable("could not upload file", err)
	}

	resource := domain.Resource{
		ID:          uuid.New().String(),
		TopicID:     input.TopicID,
		Title:       input.Title,
		Description: input.Description,
		FilePath:    filePath,
		FileSize:    formatFileSize(input.FileSize),
		FileType:    ext,
		CreatedAt:   time.Now(),
	}

	created, err := s.repo.CreateResource(ctx, resource)
	if err != nil {
		// Compensate: the row insert failed, so take the blob back out.
		if removeErr := s.store.Remove(ctx, filePath); removeErr != nil {
			s.logger.Error("compensation failed, orphaned blob remains",
				zap.String("file_path", filePath),
				zap.Error(removeErr),
			)
		}
		return nil, appErrors.Wrap(err, "could not create resource record")
	}

	s.logger.Info("resource uploaded",
		zap.String("resource_id", created.ID),
		zap.String("topic_id", created.TopicID),
		zap.String("file_path", created.FilePath),
	)
	return created, nil
}

func (s *service) Delete(ctx context.Context, resourceID string) error {
	resource, err := s.repo.GetResource(ctx, resourceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return appErrors.NewNotFound("resource not found: " + resourceID)
		}
		return appErrors.NewUnavailable("could not load resource", err)
	}

	if err := s.store.Remove(ctx, resource.FilePath); err != nil {
		return appErrors.NewUnavailable("could not delete stored file", err)
	}

	if err := s.repo.DeleteResource(ctx, resourceID); err != nil {
		return appErrors.Wrap(err, "could not delete resource record")
	}

	s.logger.Info("resource deleted",
		zap.String("resource_id", resourceID),
		zap.String("file_path", resource.FilePath),
	)
	return nil
}

// formatFileSize renders a byte count the way the catalog displays it.
func formatFileSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}
