package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mathclasses-backend/internal/repository"
	"mathclasses-backend/internal/repository/mocks"
	appErrors "mathclasses-backend/pkg/errors"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesAccountAndProfile", func(t *testing.T) {
		auth := mocks.NewMockAuthenticator()
		profiles := mocks.NewMockProfileRepository()
		service := NewService(auth, profiles, zap.NewNop())

		session, err := service.SignUp(ctx, "student@example.com", "secret", "A Student")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.NotEmpty(t, session.UserID)
		assert.NotEmpty(t, session.AccessToken)

		profile, exists := profiles.Stored(session.UserID)
		require.True(t, exists)
		assert.Equal(t, "A Student", profile.FullName)
	})

	t.Run("SucceedsWhenProfileInsertFails", func(t *testing.T) {
		auth := mocks.NewMockAuthenticator()
		profiles := mocks.NewMockProfileRepository()
		profiles.SetError("Insert", repository.Unavailable("insert profiles", assert.AnError))
		service := NewService(auth, profiles, zap.NewNop())

		session, err := service.SignUp(ctx, "student@example.com", "secret", "A Student")
		require.NoError(t, err)
		assert.NotEmpty(t, session.UserID)

		_, exists := profiles.Stored(session.UserID)
		assert.False(t, exists)
	})

	t.Run("ConflictOnDuplicateEmail", func(t *testing.T) {
		auth := mocks.NewMockAuthenticator()
		service := NewService(auth, mocks.NewMockProfileRepository(), zap.NewNop())

		_, err := service.SignUp(ctx, "student@example.com", "secret", "A Student")
		require.NoError(t, err)

		_, err = service.SignUp(ctx, "student@example.com", "other", "B Student")
		require.Error(t, err)
		assert.True(t, appErrors.IsConflict(err))
	})

	t.Run("Validation", func(t *testing.T) {
		service := NewService(mocks.NewMockAuthenticator(), mocks.NewMockProfileRepository(), zap.NewNop())

		_, err := service.SignUp(ctx, "", "secret", "A Student")
		assert.True(t, appErrors.IsValidation(err))

		_, err = service.SignUp(ctx, "student@example.com", "", "A Student")
		assert.True(t, appErrors.IsValidation(err))
	})
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("ValidCredentials", func(t *testing.T) {
		auth := mocks.NewMockAuthenticator()
		service := NewService(auth, mocks.NewMockProfileRepository(), zap.NewNop())

		_, err := service.SignUp(ctx, "student@example.com", "secret", "A Student")
		require.NoError(t, err)

		session, err := service.SignIn(ctx, "student@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, "student@example.com", session.Email)
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		auth := mocks.NewMockAuthenticator()
		service := NewService(auth, mocks.NewMockProfileRepository(), zap.NewNop())

		_, err := service.SignIn(ctx, "student@example.com", "wrong")
		require.Error(t, err)
		assert.True(t, appErrors.IsValidation(err))
	})

	t.Run("AuthCollaboratorDown", func(t *testing.T) {
		auth := mocks.NewMockAuthenticator()
		auth.SetError("SignIn", repository.Unavailable("token", assert.AnError))
		service := NewService(auth, mocks.NewMockProfileRepository(), zap.NewNop())

		_, err := service.SignIn(ctx, "student@example.com", "secret")
		require.Error(t, err)
		assert.True(t, appErrors.IsUnavailable(err))
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsProfileCreatedAtSignUp", func(t *testing.T) {
		auth := mocks.NewMockAuthenticator()
		profiles := mocks.NewMockProfileRepository()
		service := NewService(auth, profiles, zap.NewNop())

		session, err := service.SignUp(ctx, "student@example.com", "secret", "A Student")
		require.NoError(t, err)

		profile, err := service.Profile(ctx, session.UserID)
		require.NoError(t, err)
		assert.Equal(t, "A Student", profile.FullName)
		assert.Equal(t, session.UserID, profile.UserID)
	})

	t.Run("NotFoundWhenNoRowExists", func(t *testing.T) {
		service := NewService(mocks.NewMockAuthenticator(), mocks.NewMockProfileRepository(), zap.NewNop())

		_, err := service.Profile(ctx, "user-without-profile")
		require.Error(t, err)
		assert.True(t, appErrors.IsNotFound(err))
	})

	t.Run("UnavailableWhenStoreFails", func(t *testing.T) {
		profiles := mocks.NewMockProfileRepository()
		profiles.SetError("Get", repository.Unavailable("select profiles", assert.AnError))
		service := NewService(mocks.NewMockAuthenticator(), profiles, zap.NewNop())

		_, err := service.Profile(ctx, "user-1")
		require.Error(t, err)
		assert.True(t, appErrors.IsUnavailable(err))
	})

	t.Run("EmptyUserID", func(t *testing.T) {
		service := NewService(mocks.NewMockAuthenticator(), mocks.NewMockProfileRepository(), zap.NewNop())

		_, err := service.Profile(ctx, "")
		assert.True(t, appErrors.IsValidation(err))
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Passthrough", func(t *testing.T) {
		service := NewService(mocks.NewMockAuthenticator(), mocks.NewMockProfileRepository(), zap.NewNop())
		assert.NoError(t, service.ResetPassword(ctx, "student@example.com"))
	})

	t.Run("EmptyEmail", func(t *testing.T) {
		service := NewService(mocks.NewMockAuthenticator(), mocks.NewMockProfileRepository(), zap.NewNop())
		err := service.ResetPassword(ctx, "")
		assert.True(t, appErrors.IsValidation(err))
	})
}
