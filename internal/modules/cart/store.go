package cart

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

// NewKVRepository creates a cart repository over the key/value store,
// one record per scope under cart_<scope>.
func NewKVRepository(store storage.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) Get(ctx context.Context, scope string) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lines []Line
	err := r.store.Get(ctx, storage.CartKey(scope), &lines)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	return lines, err
}

func (r *kvRepository) Save(ctx context.Context, scope string, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Put(ctx, storage.CartKey(scope), lines)
}

func (r *kvRepository) Clear(ctx context.Context, scope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Delete(ctx, storage.CartKey(scope))
}
