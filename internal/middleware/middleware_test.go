package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mathclasses-backend/pkg/api"
	"mathclasses-backend/pkg/auth"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("Should generate request ID when not provided", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestIDFromRequest(r)
			assert.NotEmpty(t, requestID)
			w.WriteHeader(http.StatusOK)
		}))

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Should use provided request ID", func(t *testing.T) {
		expectedID := "test-request-id"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Request-ID", expectedID)
		w := httptest.NewRecorder()

		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestIDFromRequest(r)
			assert.Equal(t, expectedID, requestID)
			w.WriteHeader(http.StatusOK)
		}))

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, expectedID, w.Header().Get("X-Request-ID"))
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("Should handle panic gracefully", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("test panic")
		}))

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "error")
	})

	t.Run("Should pass through normal requests", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
		}))

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTimeoutMiddleware(t *testing.T) {
	t.Run("Should pass through fast requests", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		handler := Timeout(time.Second, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
		}))

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should reject slow requests", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()

		blocked := make(chan struct{})
		handler := Timeout(20*time.Millisecond, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			close(blocked)
		}))

		handler.ServeHTTP(w, req)
		<-blocked

		assert.Equal(t, http.StatusRequestTimeout, w.Code)
	})
}

func signTestToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := auth.Claims{
		Email: "student@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticateMiddleware(t *testing.T) {
	const secret = "super-secret-signing-key"

	validator, err := auth.NewValidator(secret, "authenticated")
	require.NoError(t, err)

	newHandler := func(sawUser *auth.User) http.Handler {
		return Authenticate(validator, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.GetUserFromContext(r.Context())
			require.NoError(t, err)
			*sawUser = *user
			w.WriteHeader(http.StatusOK)
		}))
	}

	t.Run("Should accept a valid bearer token", func(t *testing.T) {
		token := signTestToken(t, secret, "user-123", time.Now().Add(time.Hour))
		req := httptest.NewRequest("GET", "/api/saved", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		var sawUser auth.User
		newHandler(&sawUser).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-123", sawUser.ID)
		assert.Equal(t, "student@example.com", sawUser.Email)
	})

	t.Run("Should reject a missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/saved", nil)
		w := httptest.NewRecorder()

		var sawUser auth.User
		newHandler(&sawUser).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		token := signTestToken(t, secret, "user-123", time.Now().Add(-time.Hour))
		req := httptest.NewRequest("GET", "/api/saved", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		var sawUser auth.User
		newHandler(&sawUser).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should reject a token signed with the wrong key", func(t *testing.T) {
		token := signTestToken(t, "some-other-key", "user-123", time.Now().Add(time.Hour))
		req := httptest.NewRequest("GET", "/api/saved", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		var sawUser auth.User
		newHandler(&sawUser).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
