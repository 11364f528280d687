package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mathclasses-backend/pkg/api"
)

// Timeout bounds each request with a deadline. The handler keeps running in
// its own goroutine; once the deadline fires the client gets a 408 and the
// context cancellation tells downstream calls to stop.
func Timeout(timeout time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			r = r.WithContext(ctx)

			go func() {
				defer func() {
					if err := recover(); err != nil {
						logger.Error("panic in timed handler",
							zap.String("request_id", GetRequestIDFromRequest(r)),
							zap.Any("panic", err),
						)
					}
				}()

				next.ServeHTTP(w, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				logger.Warn("request timed out",
					zap.String("request_id", GetRequestIDFromRequest(r)),
					zap.String("path", r.URL.Path),
					zap.Duration("timeout", timeout),
				)

				if w.Header().Get("Content-Type") == "" {
					api.Error(w, http.StatusRequestTimeout, "Request timeout")
				}
				return
			}
		})
	}
}
