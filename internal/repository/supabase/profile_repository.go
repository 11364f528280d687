package supabase

import (
	"context"

	supa "github.com/supabase-community/supabase-go"

	"mathclasses-backend/internal/domain"
	"mathclasses-backend/internal/repository"
)

const profilesTable = "profiles"

// ProfileRepository persists profile rows.
type ProfileRepository struct {
	client *supa.Client
}

// NewProfileRepository creates a profile repository.
func NewProfileRepository(client *supa.Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

func (r *ProfileRepository) Insert(ctx context.Context, profile domain.Profile) error {
	payload := map[string]any{
		"user_id":    profile.UserID,
		"full_name":  profile.FullName,
		"updated_at": profile.UpdatedAt,
	}
	if profile.Grade != "" {
		payload["grade"] = profile.Grade
	}
	if profile.AvatarURL != "" {
		payload["avatar_url"] = profile.AvatarURL
	}

	_, _, err := r.client.From(profilesTable).
		Insert(payload, false, "", "minimal", "").
		Execute()
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return repository.Unavailable("insert profiles", err)
	}
	return nil
}

func (r *ProfileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	_, err := r.client.From(profilesTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Single().
		ExecuteTo(&profile)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.NotFound("profile", userID)
		}
		return nil, repository.Unavailable("select profiles", err)
	}
	return &profile, nil
}
