package supabase

import (
	"context"
	"fmt"

	supa "github.com/supabase-community/supabase-go"

	"mathclasses-backend/internal/repository"
)

const savedResourcesTable = "saved_resources"

// SavedResourceRepository maintains the saved_resources table. The table
// carries a uniqueness constraint on (user_id, resource_id); a racing double
// insert surfaces as ErrConflict, which the service treats as already saved.
type SavedResourceRepository struct {
	client *supa.Client
}

// NewSavedResourceRepository creates a saved-resource repository.
func NewSavedResourceRepository(client *supa.Client) *SavedResourceRepository {
	return &SavedResourceRepository{client: client}
}

func (r *SavedResourceRepository) Exists(ctx context.Context, userID, resourceID string) (bool, error) {
	var rows []struct {
		ID string `json:"id"`
	}
	_, err := r.client.From(savedResourcesTable).
		Select("id", "", false).
		Eq("user_id", userID).
		Eq("resource_id", resourceID).
		ExecuteTo(&rows)
	if err != nil {
		return false, repository.Unavailable("select saved_resources", err)
	}
	return len(rows) > 0, nil
}

func (r *SavedResourceRepository) Insert(ctx context.Context, userID, resourceID string) error {
	payload := map[string]any{
		"user_id":     userID,
		"resource_id": resourceID,
	}
	_, _, err := r.client.From(savedResourcesTable).
		Insert(payload, false, "", "minimal", "").
		Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("saved_resources (%s, %s): %w", userID, resourceID, repository.ErrConflict)
		}
		return repository.Unavailable("insert saved_resources", err)
	}
	return nil
}

func (r *SavedResourceRepository) Delete(ctx context.Context, userID, resourceID string) error {
	_, _, err := r.client.From(savedResourcesTable).
		Delete("", "").
		Eq("user_id", userID).
		Eq("resource_id", resourceID).
		Execute()
	if err != nil {
		return repository.Unavailable("delete saved_resources", err)
	}
	return nil
}

func (r *SavedResourceRepository) ListResourceIDs(ctx context.Context, userID string) ([]string, error) {
	var rows []struct {
		ResourceID string `json:"resource_id"`
	}
	_, err := r.client.From(savedResourcesTable).
		Select("resource_id", "", false).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.Unavailable("select saved_resources", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ResourceID)
	}
	return ids, nil
}
