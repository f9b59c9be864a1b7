package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := store.Put(ctx, "k", record{Name: "a", Count: 2}); err != nil {
		t.Fatalf("put: %v", err)
	}

	var got record
	if err := store.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "a" || got.Count != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()

	var v map[string]string
	err := store.Get(context.Background(), "nope", &v)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("err = %v, want ErrKeyNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, "k", []int{1, 2}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var v []int
	if err := store.Get(ctx, "k", &v); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("err after delete = %v, want ErrKeyNotFound", err)
	}

	// Deleting a missing key is a no-op.
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestCartKey(t *testing.T) {
	if got := CartKey("u1"); got != "cart_u1" {
		t.Fatalf("CartKey(u1) = %q", got)
	}
	if got := CartKey("guest"); got != "cart_guest" {
		t.Fatalf("CartKey(guest) = %q", got)
	}
}
