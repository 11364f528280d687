package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestCollector(t *testing.T) {
	t.Run("NamespaceIsApplied", func(t *testing.T) {
		c := NewCollector("mathclasses")
		c.RecordFallback("list topics")

		body := scrape(t, c)
		assert.Contains(t, body, `mathclasses_fallback_served_total{operation="list topics"} 1`)
	})

	t.Run("InstancesAreIndependent", func(t *testing.T) {
		first := NewCollector("first")
		second := NewCollector("second")
		first.RecordDownload(false)
		second.RecordDownload(true)

		firstBody := scrape(t, first)
		secondBody := scrape(t, second)

		assert.Contains(t, firstBody, "first_signed_urls_issued_total 1")
		assert.NotContains(t, firstBody, "second_")
		assert.Contains(t, secondBody, "second_placeholder_urls_used_total 1")
	})

	t.Run("MiddlewareCountsRequestsPerRoute", func(t *testing.T) {
		c := NewCollector("mw")

		handler := c.Middleware("/api/topics")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/topics/x", nil))

		body := scrape(t, c)
		assert.Contains(t, body, `mw_http_requests_total{method="GET",route="/api/topics",status="404"} 1`)
	})

	t.Run("NilCollectorRecordsAreNoOps", func(t *testing.T) {
		var c *Collector
		c.RecordLiveSourceError("get topic")
		c.RecordFallback("get topic")
		c.RecordToggle(true)
		c.RecordDownload(false)
	})
}
