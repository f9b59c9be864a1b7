package auth

import (
	"context"

	"github.com/autopartsfinder/backend/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (*user.User, string, error)

	// IssueToken signs a token for an already-authenticated user,
	// used to sign callers in right after signup.
	IssueToken(u *user.User) (string, error)
}
