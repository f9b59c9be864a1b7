package user

import (
	"context"
	"testing"

	"github.com/autopartsfinder/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	svc := NewService(NewKVRepository(storage.NewMemoryStore()))
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, "jane@example.com", "pw", "Jane", "555-0100", RoleStoreOwner)
	require.NoError(t, err)
	assert.Equal(t, RoleStoreOwner, u.Role)
	assert.NotZero(t, u.ID)

	// Duplicate emails are rejected case-insensitively.
	_, err = svc.RegisterUser(ctx, "JANE@example.com", "pw2", "", "", RoleCustomer)
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.RegisterUser(ctx, "jane@example.com", "pw", "", "", Role("superuser"))
	assert.Error(t, err)

	got, err := svc.GetUser(ctx, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc := NewService(NewKVRepository(storage.NewMemoryStore()))
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "admin-pw"))
	require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "admin-pw"))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, RoleAdmin, users[0].Role)
}
