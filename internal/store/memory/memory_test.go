package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetAndGet(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "run-1", []byte(`{"a":"b"}`)))

	blob, found, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"a":"b"}`), blob)
}

func TestStore_GetNotFound(t *testing.T) {
	store := New()

	blob, found, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, blob)
}

func TestStore_SetOverwrites(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "run-1", []byte("old")))
	require.NoError(t, store.Set(ctx, "run-1", []byte("new")))

	blob, found, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("new"), blob)
}

func TestStore_Delete(t *testing.T) {
	store := New()
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
	store := New()
	ctx := context.Background()

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.Set(ctx, "run-b", []byte("1")))
	require.NoError(t, store.Set(ctx, "run-a", []byte("2")))

	keys, err = store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-a", "run-b"}, keys)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "run-1", []byte("data")))

	blob, _, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	blob[0] = 'X'

	again, _, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), again)
}
