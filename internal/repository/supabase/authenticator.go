package supabase

import (
	"context"

	"github.com/supabase-community/gotrue-go/types"
	supa "github.com/supabase-community/supabase-go"

	"mathclasses-backend/internal/repository"
)

// Authenticator passes account operations through to gotrue.
type Authenticator struct {
	client *supa.Client
}

// NewAuthenticator creates an authenticator over the given client.
func NewAuthenticator(client *supa.Client) *Authenticator {
	return &Authenticator{client: client}
}

func (a *Authenticator) SignUp(ctx context.Context, email, password, fullName string) (*repository.Session, error) {
	resp, err := a.client.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data: map[string]interface{}{
			"full_name": fullName,
		},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, repository.Unavailable("signup", err)
	}

	return &repository.Session{
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*repository.Session, error) {
	resp, err := a.client.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		// Bad credentials are the caller's mistake, not an outage; they
		// classify as "no such account" so the service can answer 400.
		if isInvalidCredentials(err) {
			return nil, repository.NotFound("account", email)
		}
		return nil, repository.Unavailable("sign in", err)
	}

	return &repository.Session{
		UserID:       resp.User.ID.String(),
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (a *Authenticator) SendPasswordReset(ctx context.Context, email string) error {
	if err := a.client.Auth.Recover(types.RecoverRequest{Email: email}); err != nil {
		return repository.Unavailable("password reset", err)
	}
	return nil
}
