package cart

import "context"

// Repository defines data access for carts. A scope is a user id or
// GuestScope; each scope owns its lines exclusively.
type Repository interface {
	Get(ctx context.Context, scope string) ([]Line, error)
	Save(ctx context.Context, scope string, lines []Line) error
	Clear(ctx context.Context, scope string) error
}
