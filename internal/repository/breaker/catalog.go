// Package breaker decorates the live catalog repository with a circuit
// breaker. When Supabase is down, every read would otherwise wait out a full
// connection timeout before the catalog service degrades to the fallback
// table; an open circuit short-circuits that wait. A rejected call is
// reported as ErrUnavailable, which callers already treat as "use fallback".
package breaker

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"mathclasses-backend/internal/domain"
	"mathclasses-backend/internal/repository"
)

// Config holds circuit breaker tuning for the catalog repository.
type Config struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultConfig returns the tuning used in production.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// CatalogRepository wraps a repository.CatalogRepository with a shared
// circuit breaker across all read operations.
type CatalogRepository struct {
	inner  repository.CatalogRepository
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewCatalogRepository creates the decorated repository.
func NewCatalogRepository(inner repository.CatalogRepository, config Config, logger *zap.Logger) *CatalogRepository {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// Clean "no such row" and uniqueness-conflict answers both come
			// from a healthy live source; only real failures should trip.
			return err == nil || repository.IsNotFound(err) || repository.IsConflict(err)
		},
	})

	return &CatalogRepository{inner: inner, cb: cb, logger: logger}
}

// execute runs fn through the breaker, mapping a rejected call to
// ErrUnavailable so callers take their normal fallback path.
func execute[T any](r *CatalogRepository, op string, fn func() (T, error)) (T, error) {
	result, err := r.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return zero, repository.Unavailable(op, err)
		}
		return zero, err
	}
	return result.(T), nil
}

func (r *CatalogRepository) ListTopics(ctx context.Context) ([]domain.Topic, error) {
	return execute(r, "list topics", func() ([]domain.Topic, error) {
		return r.inner.ListTopics(ctx)
	})
}

func (r *CatalogRepository) GetTopic(ctx context.Context, topicID string) (*domain.Topic, error) {
	return execute(r, "get topic", func() (*domain.Topic, error) {
		return r.inner.GetTopic(ctx, topicID)
	})
}

func (r *CatalogRepository) ListResourcesForTopic(ctx context.Context, topicID string) ([]domain.Resource, error) {
	return execute(r, "list resources", func() ([]domain.Resource, error) {
		return r.inner.ListResourcesForTopic(ctx, topicID)
	})
}

func (r *CatalogRepository) ListRelatedTopicIDs(ctx context.Context, topicID string) ([]string, error) {
	return execute(r, "list related topic ids", func() ([]string, error) {
		return r.inner.ListRelatedTopicIDs(ctx, topicID)
	})
}

func (r *CatalogRepository) ListTopicsByIDs(ctx context.Context, topicIDs []string) ([]domain.Topic, error) {
	return execute(r, "list topics by ids", func() ([]domain.Topic, error) {
		return r.inner.ListTopicsByIDs(ctx, topicIDs)
	})
}

func (r *CatalogRepository) GetResource(ctx context.Context, resourceID string) (*domain.Resource, error) {
	return execute(r, "get resource", func() (*domain.Resource, error) {
		return r.inner.GetResource(ctx, resourceID)
	})
}

func (r *CatalogRepository) CreateResource(ctx context.Context, resource domain.Resource) (*domain.Resource, error) {
	return execute(r, "create resource", func() (*domain.Resource, error) {
		return r.inner.CreateResource(ctx, resource)
	})
}

func (r *CatalogRepository) DeleteResource(ctx context.Context, resourceID string) error {
	_, err := execute(r, "delete resource", func() (struct{}, error) {
		return struct{}{}, r.inner.DeleteResource(ctx, resourceID)
	})
	return err
}
