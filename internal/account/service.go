// Package account passes sign-up, sign-in, and password-reset requests
// through to the hosted auth collaborator. The core never stores or inspects
// credentials; it only relays them and keeps the profile table in step.
package account

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mathclasses-backend/internal/domain"
	"mathclasses-backend/internal/repository"
	appErrors "mathclasses-backend/pkg/errors"
)

// Service defines the account operations consumed by the HTTP layer.
type Service interface {
	// SignUp creates an account and a best-effort profile row. Account
	// creation succeeds even when the profile insert fails; the degradation
	// is logged, not surfaced.
	SignUp(ctx context.Context, email, password, fullName string) (*repository.Session, error)

	// SignIn exchanges credentials for a session.
	SignIn(ctx context.Context, email, password string) (*repository.Session, error)

	// ResetPassword asks the auth collaborator to send a reset email.
	ResetPassword(ctx context.Context, email string) error

	// Profile returns the caller's profile row.
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
}

type service struct {
	auth     repository.Authenticator
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

// NewService creates an account service.
func NewService(auth repository.Authenticator, profiles repository.ProfileRepository, logger *zap.Logger) Service {
	return &service{
		auth:     auth,
		profiles: profiles,
		logger:   logger,
	}
}

func (s *service) SignUp(ctx context.Context, email, password, fullName string) (*repository.Session, error) {
	if email == "" || password == "" {
		return nil, appErrors.NewValidation("email and password are required")
	}

	session, err := s.auth.SignUp(ctx, email, password, fullName)
	if err != nil {
		if repository.IsConflict(err) {
			return nil, appErrors.NewConflict("an account with this email already exists")
		}
		return nil, appErrors.NewUnavailable("could not create account", err)
	}

	profile := domain.Profile{
		UserID:    session.UserID,
		FullName:  fullName,
		UpdatedAt: time.Now(),
	}
	if err := s.profiles.Insert(ctx, profile); err != nil {
		// The account exists either way; a missing profile row only degrades
		// the profile page until it is recreated.
		s.logger.Warn("profile creation failed after sign-up, continuing",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
	}

	s.logger.Info("account created", zap.String("user_id", session.UserID))
	return session, nil
}

func (s *service) SignIn(ctx context.Context, email, password string) (*repository.Session, error) {
	if email == "" || password == "" {
		return nil, appErrors.NewValidation("email and password are required")
	}

	session, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, appErrors.NewValidation("invalid email or password")
		}
		return nil, appErrors.NewUnavailable("could not sign in", err)
	}
	return session, nil
}

func (s *service) ResetPassword(ctx context.Context, email string) error {
	if email == "" {
		return appErrors.NewValidation("email is required")
	}

	if err := s.auth.SendPasswordReset(ctx, email); err != nil {
		return appErrors.NewUnavailable("could not send password reset email", err)
	}
	return nil
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, appErrors.NewValidation("user identifier is required")
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			// Sign-up tolerates a failed profile insert, so an account can
			// legitimately have no row yet.
			return nil, appErrors.NewNotFound("profile not found")
		}
		return nil, appErrors.NewUnavailable("could not load profile", err)
	}
	return profile, nil
}
