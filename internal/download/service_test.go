package download

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mathclasses-backend/internal/repository"
	"mathclasses-backend/internal/repository/mocks"
)

func TestLink(t *testing.T) {
	ctx := context.Background()

	t.Run("SignedURLContainsPathAndExpiry", func(t *testing.T) {
		store := mocks.NewMockFileStore()
		service := NewService(store, 60*time.Second, zap.NewNop(), nil)

		link := service.Link(ctx, "algebra/fundamentals.pdf")
		assert.False(t, link.Fallback)
		assert.Contains(t, link.URL, "algebra/fundamentals.pdf")

		// Expiry sits within the configured window.
		parts := strings.Split(link.URL, "expires=")
		require.Len(t, parts, 2)
		expiry, err := strconv.ParseInt(parts[1], 10, 64)
		require.NoError(t, err)
		assert.LessOrEqual(t, expiry, time.Now().Add(61*time.Second).Unix())
		assert.Greater(t, expiry, time.Now().Unix())
	})

	t.Run("PlaceholderOnIssuanceFailure", func(t *testing.T) {
		store := mocks.NewMockFileStore()
		store.SetError("SignedURL", repository.Unavailable("sign", assert.AnError))
		service := NewService(store, 60*time.Second, zap.NewNop(), nil)

		link := service.Link(ctx, "algebra/fundamentals.pdf")
		assert.True(t, link.Fallback)
		assert.Equal(t, PlaceholderBase+"algebra/fundamentals.pdf", link.URL)
	})

	t.Run("PlaceholderNormalizesLeadingSlash", func(t *testing.T) {
		store := mocks.NewMockFileStore()
		store.SetError("SignedURL", fmt.Errorf("storage offline"))
		service := NewService(store, time.Minute, zap.NewNop(), nil)

		link := service.Link(ctx, "/geometry/basics.pdf")
		assert.Equal(t, PlaceholderBase+"geometry/basics.pdf", link.URL)
	})
}
