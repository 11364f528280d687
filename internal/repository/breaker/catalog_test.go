package breaker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mathclasses-backend/internal/domain"
	"mathclasses-backend/internal/repository"
	"mathclasses-backend/internal/repository/mocks"
)

func testConfig() Config {
	return Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}
}

func TestCatalogBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("PassesThroughHealthyCalls", func(t *testing.T) {
		mockRepo := mocks.NewMockCatalogRepository()
		mockRepo.AddTopic(domain.Topic{ID: "algebra", Name: "Algebra"})
		decorated := NewCatalogRepository(mockRepo, testConfig(), zap.NewNop())

		topics, err := decorated.ListTopics(ctx)
		require.NoError(t, err)
		assert.Len(t, topics, 1)
	})

	t.Run("NotFoundDoesNotTrip", func(t *testing.T) {
		mockRepo := mocks.NewMockCatalogRepository()
		decorated := NewCatalogRepository(mockRepo, testConfig(), zap.NewNop())

		for i := 0; i < 10; i++ {
			_, err := decorated.GetTopic(ctx, "missing")
			require.True(t, repository.IsNotFound(err))
		}

		// The breaker stayed closed: a real row still comes through.
		mockRepo.AddTopic(domain.Topic{ID: "algebra", Name: "Algebra"})
		topic, err := decorated.GetTopic(ctx, "algebra")
		require.NoError(t, err)
		assert.Equal(t, "Algebra", topic.Name)
	})

	t.Run("ConflictsDoNotTrip", func(t *testing.T) {
		mockRepo := mocks.NewMockCatalogRepository()
		mockRepo.SetError("CreateResource", fmt.Errorf("insert resources: %w", repository.ErrConflict))
		decorated := NewCatalogRepository(mockRepo, testConfig(), zap.NewNop())

		// A burst of duplicate inserts is user error, not an outage.
		for i := 0; i < 10; i++ {
			_, err := decorated.CreateResource(ctx, domain.Resource{ID: "dup"})
			require.True(t, repository.IsConflict(err))
		}

		mockRepo.ClearErrors()
		mockRepo.AddTopic(domain.Topic{ID: "algebra", Name: "Algebra"})
		_, err := decorated.ListTopics(ctx)
		require.NoError(t, err)
	})

	t.Run("OpensAfterRepeatedFailures", func(t *testing.T) {
		mockRepo := mocks.NewMockCatalogRepository()
		mockRepo.SetError("ListTopics", repository.Unavailable("select topics", assert.AnError))
		decorated := NewCatalogRepository(mockRepo, testConfig(), zap.NewNop())

		for i := 0; i < 5; i++ {
			_, err := decorated.ListTopics(ctx)
			require.Error(t, err)
		}

		// Even after the live source recovers, the open circuit still
		// rejects, and the rejection reads as unavailability.
		mockRepo.ClearErrors()
		_, err := decorated.ListTopics(ctx)
		require.Error(t, err)
		assert.True(t, repository.IsUnavailable(err))
	})
}
