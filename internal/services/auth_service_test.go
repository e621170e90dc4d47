package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillforge/course-service/internal/auth"
	"github.com/skillforge/course-service/internal/models"
	"github.com/skillforge/course-service/internal/utils"
)

func newTestAuthService(repo *fakeRepository) (AuthService, *auth.MemorySessionStore) {
	sessions := auth.NewMemorySessionStore()
	return NewAuthService(repo, sessions, testLogger(), utils.NewValidator()), sessions
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc, _ := newTestAuthService(repo)

	t.Run("CreatesStudent", func(t *testing.T) {
		user, err := svc.Register(ctx, &RegisterRequest{
			Email:    "new@example.com",
			Password: "correct-horse-battery",
			FullName: "New Student",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleStudent, user.Role)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "correct-horse-battery", user.PasswordHash, "password must be stored hashed")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{
			Email:    "new@example.com",
			Password: "another-password",
			FullName: "Impostor",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{
			Email:    "short@example.com",
			Password: "abc",
			FullName: "Short",
		})
		assert.True(t, IsValidation(err), "expected validation error, got %v", err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc, sessions := newTestAuthService(repo)

	registered, err := svc.Register(ctx, &RegisterRequest{
		Email:    "login@example.com",
		Password: "correct-horse-battery",
		FullName: "Login User",
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		session, user, err := svc.Login(ctx, &LoginRequest{
			Email:    "login@example.com",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.Equal(t, registered.ID, session.Principal.UserID)
		assert.Equal(t, models.RoleStudent, session.Principal.Role)
		assert.NotEmpty(t, session.CSRFToken)

		stored, err := sessions.Get(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, session.Principal, stored.Principal)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := svc.Login(ctx, &LoginRequest{
			Email:    "login@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmailSameError", func(t *testing.T) {
		_, _, err := svc.Login(ctx, &LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		user, err := repo.Users().GetByEmail(ctx, "login@example.com")
		require.NoError(t, err)
		user.IsActive = false
		require.NoError(t, repo.Users().Update(ctx, user))

		_, _, err = svc.Login(ctx, &LoginRequest{
			Email:    "login@example.com",
			Password: "correct-horse-battery",
		})
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc, sessions := newTestAuthService(repo)

	_, err := svc.Register(ctx, &RegisterRequest{
		Email:    "bye@example.com",
		Password: "correct-horse-battery",
		FullName: "Leaving User",
	})
	require.NoError(t, err)

	session, _, err := svc.Login(ctx, &LoginRequest{
		Email:    "bye@example.com",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.ID))

	_, err = sessions.Get(ctx, session.ID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	// Logging out with no session is a no-op.
	assert.NoError(t, svc.Logout(ctx, ""))
}
