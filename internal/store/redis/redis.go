package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	redislib "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-replay-cache/internal/config"
	"go-replay-cache/internal/interfaces"
)

// Ensure Store implements interfaces.BlobStore
var _ interfaces.BlobStore = (*Store)(nil)

// Store keeps recordings in Redis so they survive server restarts and can
// be shared between the recording and replaying sides of a CI pipeline.
type Store struct {
	client interfaces.RedisClient
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a Redis-backed store with the provided client.
func New(cfg *config.RedisConfig, client interfaces.RedisClient, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
		logger: logger,
	}
}

// Get retrieves the blob stored under runID.
func (s *Store) Get(ctx context.Context, runID string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+runID).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return data, true, nil
}

// Set stores data under runID, replacing any previous blob.
func (s *Store) Set(ctx context.Context, runID string, data []byte) error {
	if err := s.client.Set(ctx, s.prefix+runID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Delete removes the blob stored under runID.
func (s *Store) Delete(ctx context.Context, runID string) error {
	if err := s.client.Del(ctx, s.prefix+runID).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Keys returns the stored run IDs in sorted order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.client.Keys(ctx, s.prefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("redis keys failed: %w", err)
	}

	runIDs := make([]string, 0, len(keys))
	for _, key := range keys {
		runIDs = append(runIDs, strings.TrimPrefix(key, s.prefix))
	}
	sort.Strings(runIDs)
	return runIDs, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
