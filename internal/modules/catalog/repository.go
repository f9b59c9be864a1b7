package catalog

import (
	"context"
	"errors"
)

var (
	// ErrPartNotFound is returned when no part matches the part number.
	ErrPartNotFound = errors.New("part not found")
	// ErrInvalidQuantity is returned by DeductStock for a quantity
	// that is not positive or exceeds the current stock.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Repository defines data access for parts.
type Repository interface {
	// All returns a snapshot of the catalog sorted by part number.
	All(ctx context.Context) ([]Part, error)

	// Find returns the part with the given part number.
	Find(ctx context.Context, partNumber string) (*Part, error)

	// UpsertAll replaces or inserts each part by part number;
	// last write wins within the batch. Parts not in the batch are
	// left untouched.
	UpsertAll(ctx context.Context, parts []Part) error

	// DeductStock atomically verifies 0 < qty <= stock for the part
	// and decrements it, returning the updated record. This is the
	// per-item commit guard; with concurrent callers it doubles as
	// the optimistic-concurrency check.
	DeductStock(ctx context.Context, partNumber string, qty int) (*Part, error)
}
