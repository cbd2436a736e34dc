package bigcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-replay-cache/internal/config"
)

func newTestStore(t *testing.T) *Store {
	cfg := &config.BigCacheConfig{SizeMB: 16, LifeWindowMinutes: 10}

	store, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNew(t *testing.T) {
	store := newTestStore(t)
	assert.NotNil(t, store.cache)
}

func TestStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "run-1", []byte(`{"k":"v"}`)))

	blob, found, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"k":"v"}`), blob)
}

func TestStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	blob, found, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, blob)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "run-1", []byte("data")))
	require.NoError(t, store.Delete(ctx, "run-1"))

	_, found, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is not an error
	require.NoError(t, store.Delete(ctx, "run-1"))
}

func TestStore_Keys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "run-b", []byte("1")))
	require.NoError(t, store.Set(ctx, "run-a", []byte("2")))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-a", "run-b"}, keys)
}
