// Package auth validates Supabase-issued access tokens. GoTrue signs its
// JWTs with HS256 using the project's JWT secret, so a single symmetric
// validator covers every session token the frontend presents.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrMissingToken  = errors.New("missing authentication token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Claims are the token claims we care about. GoTrue puts the user ID in
// the subject claim.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}

// Validator checks access tokens against the project's JWT secret.
type Validator struct {
	secret   []byte
	audience string
}

// NewValidator creates a validator. audience may be empty to skip the
// audience check; Supabase sets it to "authenticated" for signed-in users.
func NewValidator(secret, audience string) (*Validator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Validator{secret: []byte(secret), audience: audience}, nil
}

// ValidateToken parses and verifies a token string, with or without a
// "Bearer " prefix, and returns its claims.
func (v *Validator) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	tokenString = strings.TrimSpace(tokenString)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if v.audience != "" {
		if !containsAudience(claims.Audience, v.audience) {
			return nil, fmt.Errorf("%w: invalid audience", ErrInvalidClaims)
		}
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidClaims)
	}

	return claims, nil
}

func containsAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

// User identifies the authenticated caller of a request.
type User struct {
	ID    string
	Email string
}

type contextKey string

const userContextKey contextKey = "user"

// GetUserFromContext extracts the authenticated user from the context.
func GetUserFromContext(ctx context.Context) (*User, error) {
	user, ok := ctx.Value(userContextKey).(*User)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// SetUserInContext stores the authenticated user on the context.
func SetUserInContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
