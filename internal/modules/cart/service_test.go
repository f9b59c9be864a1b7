package cart

import (
	"context"
	"testing"

	"github.com/autopartsfinder/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewKVRepository(storage.NewMemoryStore()))
}

func brakePad() Line {
	return Line{PartNumber: "BP-100", PartName: "Brake Pad", Price: 10.00}
}

func TestAddMergesQuantities(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", brakePad(), 2)
	require.NoError(t, err)
	lines, err := svc.Add(ctx, "u1", brakePad(), 3)
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Qty)
}

func TestAddFloorsAtOne(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	lines, err := svc.Add(ctx, "u1", brakePad(), -3)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Qty)

	// Merging a large negative still leaves at least one.
	lines, err = svc.Add(ctx, "u1", brakePad(), -100)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Qty)
}

func TestUpdateQtyRemovesAtZero(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", brakePad(), 2)
	require.NoError(t, err)

	lines, err := svc.UpdateQty(ctx, "u1", "BP-100", 7)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Qty)

	lines, err = svc.UpdateQty(ctx, "u1", "BP-100", 0)
	require.NoError(t, err)
	assert.Empty(t, lines, "a line set to zero is removed, not zeroed")
}

func TestScopesAreIsolated(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", brakePad(), 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, GuestScope, brakePad(), 4)
	require.NoError(t, err)

	u1, err := svc.Items(ctx, "u1")
	require.NoError(t, err)
	guest, err := svc.Items(ctx, GuestScope)
	require.NoError(t, err)

	assert.Equal(t, 1, u1[0].Qty)
	assert.Equal(t, 4, guest[0].Qty)

	require.NoError(t, svc.Clear(ctx, "u1"))
	u1, err = svc.Items(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, u1)

	guest, err = svc.Items(ctx, GuestScope)
	require.NoError(t, err)
	assert.Len(t, guest, 1, "clearing one scope must not touch another")
}

func TestTotalUsesSnapshotPrices(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", Line{PartNumber: "BP-100", Price: 10.00}, 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u1", Line{PartNumber: "AF-200", Price: 15.50}, 1)
	require.NoError(t, err)

	total, err := svc.Total(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 35.50, total, 1e-9)
}
