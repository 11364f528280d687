package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func sign(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func baseClaims(subject string) Claims {
	return Claims{
		Email: "student@example.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{"authenticated"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestValidator(t *testing.T) {
	validator, err := NewValidator(testSecret, "authenticated")
	require.NoError(t, err)

	t.Run("AcceptsValidToken", func(t *testing.T) {
		token := sign(t, testSecret, baseClaims("user-42"))

		claims, err := validator.ValidateToken("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.UserID())
		assert.Equal(t, "student@example.com", claims.Email)
	})

	t.Run("RejectsEmptyToken", func(t *testing.T) {
		_, err := validator.ValidateToken("")
		assert.ErrorIs(t, err, ErrMissingToken)

		_, err = validator.ValidateToken("Bearer   ")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("RejectsExpiredToken", func(t *testing.T) {
		claims := baseClaims("user-42")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := sign(t, testSecret, claims)

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("RejectsWrongSignature", func(t *testing.T) {
		token := sign(t, "a-different-secret", baseClaims("user-42"))

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("RejectsWrongAudience", func(t *testing.T) {
		claims := baseClaims("user-42")
		claims.Audience = jwt.ClaimStrings{"anon"}
		token := sign(t, testSecret, claims)

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("RejectsMissingSubject", func(t *testing.T) {
		token := sign(t, testSecret, baseClaims(""))

		_, err := validator.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("RequiresSecret", func(t *testing.T) {
		_, err := NewValidator("", "authenticated")
		assert.Error(t, err)
	})
}

func TestUserContext(t *testing.T) {
	t.Run("RoundTrips", func(t *testing.T) {
		ctx := SetUserInContext(context.Background(), &User{ID: "u1", Email: "e"})
		user, err := GetUserFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("MissingUserErrors", func(t *testing.T) {
		_, err := GetUserFromContext(context.Background())
		assert.Error(t, err)
	})
}
