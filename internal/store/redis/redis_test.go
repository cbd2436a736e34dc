package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	redislib "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"go-replay-cache/internal/config"
	"go-replay-cache/internal/interfaces/mock"
)

func newTestStore(t *testing.T) (*Store, *mock.MockRedisClient) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRedisClient(ctrl)

	cfg := &config.RedisConfig{KeyPrefix: "replay:", TTLSeconds: 3600}
	return New(cfg, client, zap.NewNop()), client
}

func TestStore_Get_Found(t *testing.T) {
	store, client := newTestStore(t)

	client.EXPECT().Get(gomock.Any(), "replay:run-1").
		Return(redislib.NewStringResult(`{"a":"b"}`, nil))

	blob, found, err := store.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"a":"b"}`), blob)
}

func TestStore_Get_NotFound(t *testing.T) {
	store, client := newTestStore(t)

	client.EXPECT().Get(gomock.Any(), "replay:missing").
		Return(redislib.NewStringResult("", redislib.Nil))

	blob, found, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, blob)
}

func TestStore_Get_Error(t *testing.T) {
	store, client := newTestStore(t)

	client.EXPECT().Get(gomock.Any(), "replay:run-1").
		Return(redislib.NewStringResult("", errors.New("connection reset")))

	_, _, err := store.Get(context.Background(), "run-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis get failed")
}

func TestStore_Set(t *testing.T) {
	store, client := newTestStore(t)

	client.EXPECT().Set(gomock.Any(), "replay:run-1", []byte("data"), time.Hour).
		Return(redislib.NewStatusResult("OK", nil))

	require.NoError(t, store.Set(context.Background(), "run-1", []byte("data")))
}

func TestStore_Set_Error(t *testing.T) {
	store, client := newTestStore(t)

	client.EXPECT().Set(gomock.Any(), "replay:run-1", gomock.Any(), gomock.Any()).
		Return(redislib.NewStatusResult("", errors.New("write refused")))

	err := store.Set(context.Background(), "run-1", []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set failed")
}

func TestStore_Delete(t *testing.T) {
	store, client := newTestStore(t)

	client.EXPECT().Del(gomock.Any(), "replay:run-1").
		Return(redislib.NewIntResult(1, nil))

	require.NoError(t, store.Delete(context.Background(), "run-1"))
}

func TestStore_Keys_StripsPrefix(t *testing.T) {
	store, client := newTestStore(t)

	client.EXPECT().Keys(gomock.Any(), "replay:*").
		Return(redislib.NewStringSliceResult([]string{"replay:run-b", "replay:run-a"}, nil))

	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"run-a", "run-b"}, keys)
}

func TestStore_Close(t *testing.T) {
	store, client := newTestStore(t)

	client.EXPECT().Close().Return(nil)

	require.NoError(t, store.Close())
}
