package ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/autopartsfinder/backend/internal/storage"
)

type kvRepository struct {
	mu    sync.RWMutex
	store storage.Store
}

// NewKVRepository creates a ledger repository over the key/value store.
func NewKVRepository(store storage.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) AppendTransaction(ctx context.Context, tx Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history []Transaction
	if err := r.store.Get(ctx, storage.KeyTransactions, &history); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return err
	}
	history = append([]Transaction{tx}, history...)
	return r.store.Put(ctx, storage.KeyTransactions, history)
}

func (r *kvRepository) AppendReceipt(ctx context.Context, receipt Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history []Receipt
	if err := r.store.Get(ctx, storage.KeyReceipts, &history); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return err
	}
	history = append([]Receipt{receipt}, history...)
	return r.store.Put(ctx, storage.KeyReceipts, history)
}

func (r *kvRepository) Transactions(ctx context.Context) ([]Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var history []Transaction
	err := r.store.Get(ctx, storage.KeyTransactions, &history)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	return history, err
}

func (r *kvRepository) Receipts(ctx context.Context) ([]Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var history []Receipt
	err := r.store.Get(ctx, storage.KeyReceipts, &history)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	return history, err
}
