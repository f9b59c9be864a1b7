package auth

import (
	"context"
	"testing"
	"time"

	"github.com/autopartsfinder/backend/internal/modules/user"
	"github.com/autopartsfinder/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	repo := user.NewKVRepository(storage.NewMemoryStore())
	userService := user.NewService(repo)
	svc := NewService(repo, "test-secret", time.Hour)
	ctx := context.Background()

	registered, err := userService.RegisterUser(ctx, "jane@example.com", "s3cret", "Jane", "", user.RoleCustomer)
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, u.ID)
	assert.Equal(t, user.RoleCustomer, u.Role)

	_, _, err = svc.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown emails get the same error as wrong passwords.
	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordsAreHashed(t *testing.T) {
	repo := user.NewKVRepository(storage.NewMemoryStore())
	userService := user.NewService(repo)
	ctx := context.Background()

	u, err := userService.RegisterUser(ctx, "jane@example.com", "s3cret", "", "", user.RoleCustomer)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)
}
