package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"mathclasses-backend/pkg/api"
	"mathclasses-backend/pkg/auth"
)

// Authenticate verifies the bearer token on every request and stores the
// caller identity on the context. Requests without a valid session token
// are rejected with 401.
func Authenticate(validator *auth.Validator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				api.Error(w, http.StatusUnauthorized, "Missing authentication token")
				return
			}

			claims, err := validator.ValidateToken(header)
			if err != nil {
				logger.Debug("token rejected",
					zap.String("request_id", GetRequestIDFromRequest(r)),
					zap.Error(err),
				)
				api.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user := &auth.User{ID: claims.UserID(), Email: claims.Email}
			ctx := auth.SetUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
