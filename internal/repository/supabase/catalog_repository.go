package supabase

import (
	"context"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"mathclasses-backend/internal/domain"
	"mathclasses-backend/internal/repository"
)

const (
	topicsTable        = "topics"
	resourcesTable     = "resources"
	relatedTopicsTable = "related_topics"
)

// CatalogRepository reads and writes the catalog tables of a Supabase project.
type CatalogRepository struct {
	client *supa.Client
}

// NewCatalogRepository creates a catalog repository over the given client.
func NewCatalogRepository(client *supa.Client) *CatalogRepository {
	return &CatalogRepository{client: client}
}

func (r *CatalogRepository) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	var topics []domain.Topic
	_, err := r.client.From(topicsTable).
		Select("*", "", false).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&topics)
	if err != nil {
		return nil, repository.Unavailable("select topics", err)
	}
	return topics, nil
}

func (r *CatalogRepository) GetTopic(ctx context.Context, topicID string) (*domain.Topic, error) {
	var topic domain.Topic
	_, err := r.client.From(topicsTable).
		Select("*", "", false).
		Eq("id", topicID).
		Single().
		ExecuteTo(&topic)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.NotFound("topic", topicID)
		}
		return nil, repository.Unavailable("select topic", err)
	}
	return &topic, nil
}

func (r *CatalogRepository) ListResourcesForTopic(ctx context.Context, topicID string) ([]domain.Resource, error) {
	var resources []domain.Resource
	_, err := r.client.From(resourcesTable).
		Select("*", "", false).
		Eq("topic_id", topicID).
		Order("title", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&resources)
	if err != nil {
		return nil, repository.Unavailable("select resources", err)
	}
	return resources, nil
}

func (r *CatalogRepository) ListRelatedTopicIDs(ctx context.Context, topicID string) ([]string, error) {
	var links []struct {
		RelatedTopicID string `json:"related_topic_id"`
	}
	_, err := r.client.From(relatedTopicsTable).
		Select("related_topic_id", "", false).
		Eq("topic_id", topicID).
		ExecuteTo(&links)
	if err != nil {
		return nil, repository.Unavailable("select related_topics", err)
	}

	ids := make([]string, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.RelatedTopicID)
	}
	return ids, nil
}

func (r *CatalogRepository) ListTopicsByIDs(ctx context.Context, topicIDs []string) ([]domain.Topic, error) {
	if len(topicIDs) == 0 {
		return nil, nil
	}

	var topics []domain.Topic
	_, err := r.client.From(topicsTable).
		Select("*", "", false).
		In("id", topicIDs).
		ExecuteTo(&topics)
	if err != nil {
		return nil, repository.Unavailable("select topics by ids", err)
	}
	return topics, nil
}

func (r *CatalogRepository) GetResource(ctx context.Context, resourceID string) (*domain.Resource, error) {
	var resource domain.Resource
	_, err := r.client.From(resourcesTable).
		Select("*", "", false).
		Eq("id", resourceID).
		Single().
		ExecuteTo(&resource)
	if err != nil {
		if isNoRows(err) {
			return nil, repository.NotFound("resource", resourceID)
		}
		return nil, repository.Unavailable("select resource", err)
	}
	return &resource, nil
}

func (r *CatalogRepository) CreateResource(ctx context.Context, resource domain.Resource) (*domain.Resource, error) {
	payload := map[string]any{
		"id":          resource.ID,
		"topic_id":    resource.TopicID,
		"title":       resource.Title,
		"description": resource.Description,
		"file_path":   resource.FilePath,
		"file_size":   resource.FileSize,
		"file_type":   resource.FileType,
		"created_at":  resource.CreatedAt,
	}

	var created []domain.Resource
	_, err := r.client.From(resourcesTable).
		Insert(payload, false, "", "representation", "").
		ExecuteTo(&created)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, repository.Unavailable("insert resource", err)
	}
	if len(created) == 0 {
		return nil, repository.Unavailable("insert resource", repository.ErrNotFound)
	}
	return &created[0], nil
}

func (r *CatalogRepository) DeleteResource(ctx context.Context, resourceID string) error {
	_, _, err := r.client.From(resourcesTable).
		Delete("", "").
		Eq("id", resourceID).
		Execute()
	if err != nil {
		return repository.Unavailable("delete resource", err)
	}
	return nil
}
