package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/autopartsfinder/backend/internal/storage"
	"github.com/google/uuid"
)

// storedUser is the persisted shape; the hash must survive the JSON
// round-trip even though it never appears in API responses.
type storedUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

type kvRepository struct {
	mu    sync.RWMutex
	store storage.Store
}

// NewKVRepository creates a user repository over the key/value store.
// The whole user set lives under a single key, so read-modify-write
// sequences are serialised by the repository's own lock.
func NewKVRepository(store storage.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) load(ctx context.Context) ([]storedUser, error) {
	var users []storedUser
	err := r.store.Get(ctx, storage.KeyUsers, &users)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	return users, err
}

func (r *kvRepository) CreateUser(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailTaken
		}
	}

	users = append(users, storedUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Phone:        user.Phone,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	})
	return r.store.Put(ctx, storage.KeyUsers, users)
}

func (r *kvRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return fromStored(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *kvRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID.String() == id {
			return fromStored(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *kvRepository) ListUsers(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(stored))
	for _, u := range stored {
		users = append(users, fromStored(u))
	}
	return users, nil
}

func fromStored(u storedUser) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Phone:        u.Phone,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}
