package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
)

func newTestOrder(id int, token string) *domain.Order {
	now := time.Now().UTC()
	return &domain.Order{
		ID:            id,
		Status:        domain.StatusPlaced,
		CreatedAt:     now,
		UpdatedAt:     now,
		TrackingToken: token,
		Version:       1,
	}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	order := newTestOrder(1, "tok-1")
	require.NoError(t, store.CreateOrder(ctx, order))

	got, err := store.GetOrder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaced, got.Status)

	byToken, err := store.GetOrderByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, 1, byToken.ID)
}

func TestMemoryStore_NotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.GetOrder(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.GetOrderByToken(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore_UpdateVersionCheck(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	order := newTestOrder(1, "tok-1")
	require.NoError(t, store.CreateOrder(ctx, order))

	fresh, err := store.GetOrder(ctx, 1)
	require.NoError(t, err)
	fresh.Status = domain.StatusBaking
	require.NoError(t, store.UpdateOrder(ctx, fresh, 1))
	assert.Equal(t, int64(2), fresh.Version)

	// A writer holding the old version must lose.
	stale := newTestOrder(1, "tok-1")
	stale.Status = domain.StatusCancelled
	err = store.UpdateOrder(ctx, stale, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := store.GetOrder(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBaking, got.Status)
}

func TestMemoryStore_ListOrdersSince(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	old := newTestOrder(1, "tok-1")
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	recent := newTestOrder(2, "tok-2")
	require.NoError(t, store.CreateOrder(ctx, old))
	require.NoError(t, store.CreateOrder(ctx, recent))

	orders, err := store.ListOrdersSince(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].ID)
}

func TestMemoryStore_Activities(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendActivity(ctx, domain.ActivityItem{
			ID:        string(rune('a' + i)),
			Action:    "status_changed",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	items, err := store.ListActivities(ctx, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	// Newest first.
	assert.True(t, items[0].Timestamp.After(items[1].Timestamp))
	assert.True(t, items[1].Timestamp.After(items[2].Timestamp))
}
