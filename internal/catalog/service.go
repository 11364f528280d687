// Package catalog is the single point of truth for which topics, resources,
// and related-topic links exist right now. It prefers the live data source
// and substitutes the static fallback catalog whenever the live source fails
// or answers empty, so callers never see a live-source error on a read path.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"mathclasses-backend/internal/domain"
	"mathclasses-backend/internal/observability"
	"mathclasses-backend/internal/repository"
	appErrors "mathclasses-backend/pkg/errors"
)

// Service defines the catalog read operations consumed by the HTTP layer.
type Service interface {
	// ListTopics returns all topics. Never fails: a live-source error or an
	// empty live answer yields the full fallback topic set.
	ListTopics(ctx context.Context) []domain.Topic

	// GetTopic returns a topic by identifier, consulting the fallback on any
	// non-found outcome. Returns a NOT_FOUND error only when neither source
	// has the identifier.
	GetTopic(ctx context.Context, topicID string) (*domain.Topic, error)

	// ListResourcesForTopic returns a topic's resources in title order, with
	// the same fallback-on-error-or-empty policy as ListTopics.
	ListResourcesForTopic(ctx context.Context, topicID string) []domain.Resource

	// ListRelatedTopics resolves the related-topic set for a topic. Both
	// resolution steps degrade to the fallback tables independently.
	ListRelatedTopics(ctx context.Context, topicID string) []domain.Topic

	// GetResource returns a resource by identifier with fallback lookup.
	GetResource(ctx context.Context, resourceID string) (*domain.Resource, error)
}

type service struct {
	repo     repository.CatalogRepository
	fallback *Fallback
	logger   *zap.Logger
	metrics  *observability.Collector
}

// NewService creates a catalog service over the given live repository and
// fallback table. The metrics collector may be nil.
func NewService(repo repository.CatalogRepository, fallback *Fallback, logger *zap.Logger, metrics *observability.Collector) Service {
	return &service{
		repo:     repo,
		fallback: fallback,
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *service) ListTopics(ctx context.Context) []domain.Topic {
	topics, err := s.repo.ListTopics(ctx)
	if err != nil {
		s.logger.Warn("live source failed listing topics, serving fallback", zap.Error(err))
		s.metrics.RecordLiveSourceError("list_topics")
		s.metrics.RecordFallback("list_topics")
		return s.fallback.Topics()
	}
	if len(topics) == 0 {
		s.logger.Debug("live source returned no topics, serving fallback")
		s.metrics.RecordFallback("list_topics")
		return s.fallback.Topics()
	}
	return topics
}

func (s *service) GetTopic(ctx context.Context, topicID string) (*domain.Topic, error) {
	topic, err := s.repo.GetTopic(ctx, topicID)
	if err == nil && topic != nil {
		return topic, nil
	}

	// Any non-found outcome consults the fallback: transport failures and
	// successful-empty answers are treated alike to maximize availability.
	if err != nil && !repository.IsNotFound(err) {
		s.logger.Warn("live source failed fetching topic",
			zap.String("topic_id", topicID),
			zap.Error(err),
		)
		s.metrics.RecordLiveSourceError("get_topic")
	}

	if fallbackTopic, ok := s.fallback.Topic(topicID); ok {
		s.metrics.RecordFallback("get_topic")
		return fallbackTopic, nil
	}
	return nil, appErrors.NewNotFound("topic not found: " + topicID)
}

func (s *service) ListResourcesForTopic(ctx context.Context, topicID string) []domain.Resource {
	resources, err := s.repo.ListResourcesForTopic(ctx, topicID)
	if err != nil {
		s.logger.Warn("live source failed listing resources, serving fallback",
			zap.String("topic_id", topicID),
			zap.Error(err),
		)
		s.metrics.RecordLiveSourceError("list_resources")
		s.metrics.RecordFallback("list_resources")
		return s.fallback.Resources(topicID)
	}
	if len(resources) == 0 {
		s.metrics.RecordFallback("list_resources")
		return s.fallback.Resources(topicID)
	}
	return resources
}

func (s *service) ListRelatedTopics(ctx context.Context, topicID string) []domain.Topic {
	relatedIDs, err := s.repo.ListRelatedTopicIDs(ctx, topicID)
	if err != nil || len(relatedIDs) == 0 {
		if err != nil {
			s.logger.Warn("live source failed listing related topics, serving fallback",
				zap.String("topic_id", topicID),
				zap.Error(err),
			)
			s.metrics.RecordLiveSourceError("list_related")
		}
		s.metrics.RecordFallback("list_related")
		return s.fallback.RelatedTopics(topicID)
	}

	topics, err := s.repo.ListTopicsByIDs(ctx, relatedIDs)
	if err != nil || len(topics) == 0 {
		if err != nil {
			s.logger.Warn("live source failed resolving related topic records, serving fallback",
				zap.String("topic_id", topicID),
				zap.Error(err),
			)
			s.metrics.RecordLiveSourceError("list_related")
		}
		s.metrics.RecordFallback("list_related")
		return s.fallback.RelatedTopics(topicID)
	}
	return topics
}

func (s *service) GetResource(ctx context.Context, resourceID string) (*domain.Resource, error) {
	resource, err := s.repo.GetResource(ctx, resourceID)
	if err == nil && resource != nil {
		return resource, nil
	}

	if err != nil && !repository.IsNotFound(err) {
		s.logger.Warn("live source failed fetching resource",
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
		s.metrics.RecordLiveSourceError("get_resource")
	}

	if fallbackResource, ok := s.fallback.Resource(resourceID); ok {
		s.metrics.RecordFallback("get_resource")
		return fallbackResource, nil
	}
	return nil, appErrors.NewNotFound("resource not found: " + resourceID)
}
