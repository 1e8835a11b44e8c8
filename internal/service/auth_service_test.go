package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/socialflow/internal/repository"
	"github.com/maheshrc27/socialflow/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() AuthService {
	return NewAuthService(repository.NewUserRepository(storage.NewMemoryKV()))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestAuthService()

	user, err := s.Register(ctx, "Jamie", "jamie@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	// Passwords are never stored in the clear.
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	loggedIn, err := s.Login(ctx, "jamie@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = s.Login(ctx, "jamie@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestAuthService()

	_, err := s.Register(ctx, "", "jamie@example.com", "pw")
	assert.Error(t, err)

	_, err = s.Register(ctx, "Jamie", "jamie@example.com", "pw")
	require.NoError(t, err)

	_, err = s.Register(ctx, "Jamie Again", "jamie@example.com", "pw")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestDemoLoginCreatesAccountOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestAuthService()

	first, err := s.DemoLogin(ctx)
	require.NoError(t, err)

	second, err := s.DemoLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
