package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/autopartsfinder/backend/internal/storage"
)

type kvRepository struct {
	mu    sync.RWMutex
	store storage.Store
}

// NewKVRepository creates a part repository over the key/value store.
// The catalog is a single document, so every mutation is a
// read-modify-write guarded by the repository lock.
func NewKVRepository(store storage.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) load(ctx context.Context) ([]Part, error) {
	var parts []Part
	err := r.store.Get(ctx, storage.KeyParts, &parts)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	return parts, err
}

func (r *kvRepository) All(ctx context.Context) ([]Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })
	return parts, nil
}

func (r *kvRepository) Find(ctx context.Context, partNumber string) (*Part, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range parts {
		if parts[i].PartNumber == partNumber {
			p := parts[i]
			return &p, nil
		}
	}
	return nil, ErrPartNotFound
}

func (r *kvRepository) UpsertAll(ctx context.Context, batch []Part) error {
	if len(batch) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	parts, err := r.load(ctx)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(parts))
	for i, p := range parts {
		index[p.PartNumber] = i
	}
	for _, p := range batch {
		if i, ok := index[p.PartNumber]; ok {
			parts[i] = p
		} else {
			index[p.PartNumber] = len(parts)
			parts = append(parts, p)
		}
	}
	return r.store.Put(ctx, storage.KeyParts, parts)
}

func (r *kvRepository) DeductStock(ctx context.Context, partNumber string, qty int) (*Part, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range parts {
		if parts[i].PartNumber != partNumber {
			continue
		}
		if qty <= 0 || qty > parts[i].Stock {
			return nil, fmt.Errorf("%w: requested %d of %q with %d in stock",
				ErrInvalidQuantity, qty, partNumber, parts[i].Stock)
		}
		parts[i].Stock -= qty
		if err := r.store.Put(ctx, storage.KeyParts, parts); err != nil {
			return nil, err
		}
		p := parts[i]
		return &p, nil
	}
	return nil, ErrPartNotFound
}
