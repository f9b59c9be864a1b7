package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	RegisterUser(ctx context.Context, email, password, name, phone string, role Role) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)

	// EnsureAdmin creates the seeded admin account if it does not
	// exist yet. Called once at boot.
	EnsureAdmin(ctx context.Context, email, password string) error
}
