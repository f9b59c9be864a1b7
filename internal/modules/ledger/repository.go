package ledger

import "context"

// Repository defines append-only access to the purchase history.
// Appends prepend: readers observe newest-first ordering. Nothing
// ever mutates or deletes an appended record.
type Repository interface {
	AppendTransaction(ctx context.Context, tx Transaction) error
	AppendReceipt(ctx context.Context, receipt Receipt) error

	// Transactions returns the full history, newest first. Callers
	// filter by buyer or owner themselves.
	Transactions(ctx context.Context) ([]Transaction, error)

	// Receipts returns the full history, newest first.
	Receipts(ctx context.Context) ([]Receipt, error)
}
