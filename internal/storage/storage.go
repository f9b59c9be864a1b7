package storage

import (
	"context"
	"errors"
)

// Record keys. The layout is a flat key/value namespace: one JSON
// document per key, carried over unchanged from the original data set.
const (
	KeyParts        = "car_parts_db"
	KeyTransactions = "transactions"
	KeyReceipts     = "receipts"
	KeyUsers        = "users"
	CartKeyPrefix   = "cart_"
)

// ErrKeyNotFound is returned by Get when no record exists for the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store is the persistence substrate. Values are JSON-encoded whole
// documents; there are no partial updates, a Put replaces the record.
type Store interface {
	// Get decodes the record at key into v. Returns ErrKeyNotFound
	// when the key has never been written.
	Get(ctx context.Context, key string, v interface{}) error

	// Put encodes v and replaces the record at key.
	Put(ctx context.Context, key string, v interface{}) error

	// Delete removes the record at key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error
}

// CartKey builds the storage key for a cart scope (user id or "guest").
func CartKey(scope string) string {
	return CartKeyPrefix + scope
}
