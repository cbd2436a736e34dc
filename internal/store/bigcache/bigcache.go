package bigcache

import (
	"context"
	"errors"
	"sort"
	"time"

	bigcachelib "github.com/allegro/bigcache/v3"
	"go.uber.org/zap"

	"go-replay-cache/internal/config"
	"go-replay-cache/internal/interfaces"
)

// Ensure Store implements interfaces.BlobStore
var _ interfaces.BlobStore = (*Store)(nil)

// Store holds recordings in a bounded in-memory BigCache. Old recordings
// are evicted once the configured size limit is reached, which is
// acceptable for short-lived CI runs.
type Store struct {
	cache  *bigcachelib.BigCache
	logger *zap.Logger
}

// New creates a BigCache-backed store.
func New(cfg *config.BigCacheConfig, logger *zap.Logger) (*Store, error) {
	bcConfig := bigcachelib.DefaultConfig(time.Duration(cfg.LifeWindowMinutes) * time.Minute)
	bcConfig.HardMaxCacheSize = cfg.SizeMB
	bcConfig.Verbose = false
	bcConfig.MaxEntrySize = 1024 * 1024 // recordings are whole serialized cache maps

	cache, err := bigcachelib.New(context.Background(), bcConfig)
	if err != nil {
		return nil, err
	}

	return &Store{cache: cache, logger: logger}, nil
}

// Get retrieves the blob stored under runID.
func (s *Store) Get(_ context.Context, runID string) ([]byte, bool, error) {
	data, err := s.cache.Get(runID)
	if err != nil {
		if errors.Is(err, bigcachelib.ErrEntryNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set stores data under runID, replacing any previous blob.
func (s *Store) Set(_ context.Context, runID string, data []byte) error {
	return s.cache.Set(runID, data)
}

// Delete removes the blob stored under runID.
func (s *Store) Delete(_ context.Context, runID string) error {
	if err := s.cache.Delete(runID); err != nil {
		if errors.Is(err, bigcachelib.ErrEntryNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// Keys returns the stored run IDs in sorted order.
func (s *Store) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, s.cache.Len())

	it := s.cache.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			s.logger.Warn("Failed to read cache entry during iteration", zap.Error(err))
			continue
		}
		keys = append(keys, info.Key())
	}

	sort.Strings(keys)
	return keys, nil
}

// Close releases the underlying cache resources.
func (s *Store) Close() error {
	return s.cache.Close()
}
