// Package observability exposes the application's Prometheus metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Catalog metrics: live-source failures and fallback substitutions per operation
	LiveSourceErrors *prometheus.CounterVec
	FallbackServed   *prometheus.CounterVec

	// Saved-resource metrics
	ResourcesSaved   prometheus.Counter
	ResourcesUnsaved prometheus.Counter

	// Download metrics
	SignedURLsIssued    prometheus.Counter
	PlaceholderURLsUsed prometheus.Counter
}

// NewCollector creates a new metrics collector with the given namespace.
// Every collector owns a private registry, so multiple instances can coexist
// without duplicate-registration panics.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		LiveSourceErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "live_source_errors_total",
				Help:      "Live data source failures per catalog operation",
			},
			[]string{"operation"},
		),
		FallbackServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallback_served_total",
				Help:      "Requests answered from the static catalog fallback",
			},
			[]string{"operation"},
		),
		ResourcesSaved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resources_saved_total",
				Help:      "Successful save toggles",
			},
		),
		ResourcesUnsaved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resources_unsaved_total",
				Help:      "Successful unsave toggles",
			},
		),
		SignedURLsIssued: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signed_urls_issued_total",
				Help:      "Download URLs minted by the storage collaborator",
			},
		),
		PlaceholderURLsUsed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "placeholder_urls_used_total",
				Help:      "Download requests degraded to the placeholder URL",
			},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.LiveSourceErrors,
		c.FallbackServed,
		c.ResourcesSaved,
		c.ResourcesUnsaved,
		c.SignedURLsIssued,
		c.PlaceholderURLsUsed,
		collectors.NewGoCollector(),
	)

	return c
}

// RecordLiveSourceError increments the failure counter for an operation.
// Safe to call on a nil collector so services can run without metrics.
func (c *Collector) RecordLiveSourceError(operation string) {
	if c == nil {
		return
	}
	c.LiveSourceErrors.WithLabelValues(operation).Inc()
}

// RecordFallback increments the fallback-substitution counter for an operation.
func (c *Collector) RecordFallback(operation string) {
	if c == nil {
		return
	}
	c.FallbackServed.WithLabelValues(operation).Inc()
}

// RecordToggle counts a toggle outcome.
func (c *Collector) RecordToggle(saved bool) {
	if c == nil {
		return
	}
	if saved {
		c.ResourcesSaved.Inc()
	} else {
		c.ResourcesUnsaved.Inc()
	}
}

// RecordDownload counts a download URL issuance.
func (c *Collector) RecordDownload(fallback bool) {
	if c == nil {
		return
	}
	if fallback {
		c.PlaceholderURLsUsed.Inc()
	} else {
		c.SignedURLsIssued.Inc()
	}
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies per route.
func (c *Collector) Middleware(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
			c.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// statusWriter captures the response status code for metrics labels.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
