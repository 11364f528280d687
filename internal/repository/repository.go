// Package repository defines the data access contracts between the business
// services and the live data collaborator. Implementations live in
// subpackages; the interfaces here never expose collaborator-specific types.
package repository

import (
	"context"
	"io"
	"time"

	"mathclasses-backend/internal/domain"
)

// CatalogRepository reads and writes the topic/resource catalog tables of the
// live data source. All errors are reported through the sentinel values in
// errors.go so callers can decide between fallback and propagation.
type CatalogRepository interface {
	// ListTopics returns all topics ordered by name.
	ListTopics(ctx context.Context) ([]domain.Topic, error)

	// GetTopic returns the topic with the exact identifier, or ErrNotFound
	// when the live source answered successfully but has no such row.
	GetTopic(ctx context.Context, topicID string) (*domain.Topic, error)

	// ListResourcesForTopic returns the topic's resources ordered by title.
	ListResourcesForTopic(ctx context.Context, topicID string) ([]domain.Resource, error)

	// ListRelatedTopicIDs returns the related-topic identifiers linked from topicID.
	ListRelatedTopicIDs(ctx context.Context, topicID string) ([]string, error)

	// ListTopicsByIDs resolves an identifier set to full topic records.
	ListTopicsByIDs(ctx context.Context, topicIDs []string) ([]domain.Topic, error)

	// GetResource returns a single resource row, or ErrNotFound.
	GetResource(ctx context.Context, resourceID string) (*domain.Resource, error)

	// CreateResource inserts a resource row and returns the stored record.
	CreateResource(ctx context.Context, resource domain.Resource) (*domain.Resource, error)

	// DeleteResource removes a resource row by identifier.
	DeleteResource(ctx context.Context, resourceID string) error
}

// SavedResourceRepository maintains the many-to-many saved_resources relation.
type SavedResourceRepository interface {
	// Exists reports whether the (userID, resourceID) pair is present.
	Exists(ctx context.Context, userID, resourceID string) (bool, error)

	// Insert creates the pair. A racing duplicate insert returns ErrConflict;
	// the uniqueness constraint of the storage layer is the backstop.
	Insert(ctx context.Context, userID, resourceID string) error

	// Delete removes the pair. Deleting an absent pair is not an error.
	Delete(ctx context.Context, userID, resourceID string) error

	// ListResourceIDs returns every resource identifier saved by the account.
	ListResourceIDs(ctx context.Context, userID string) ([]string, error)
}

// ProfileRepository persists per-account profile rows.
type ProfileRepository interface {
	Insert(ctx context.Context, profile domain.Profile) error

	// Get returns the profile row for an account, or ErrNotFound.
	Get(ctx context.Context, userID string) (*domain.Profile, error)
}

// FileStore abstracts the blob storage collaborator holding resource files.
type FileStore interface {
	// Upload writes a blob at path within the resources bucket.
	Upload(ctx context.Context, path string, data io.Reader) error

	// Remove deletes the blob at path.
	Remove(ctx context.Context, path string) error

	// SignedURL mints a retrieval URL for path valid for the given window.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

// Session is the authenticated session handed back by the auth collaborator.
type Session struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// Authenticator is the pass-through contract to the hosted auth collaborator.
// The core never inspects credentials itself.
type Authenticator interface {
	SignUp(ctx context.Context, email, password, fullName string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SendPasswordReset(ctx context.Context, email string) error
}
