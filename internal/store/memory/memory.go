package memory

import (
	"context"
	"sort"
	"sync"

	"go-replay-cache/internal/interfaces"
)

// Ensure Store implements interfaces.BlobStore
var _ interfaces.BlobStore = (*Store)(nil)

// Store is the default in-process blob store.
type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

// Get retrieves the blob stored under runID.
func (s *Store) Get(_ context.Context, runID string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, found := s.blobs[runID]
	if !found {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the stored blob
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, true, nil
}

// Set stores data under runID, replacing any previous blob.
func (s *Store) Set(_ context.Context, runID string, data []byte) error {
	blob := make([]byte, len(data))
	copy(blob, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[runID] = blob
	return nil
}

// Delete removes the blob stored under runID, if any.
func (s *Store) Delete(_ context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, runID)
	return nil
}

// Keys returns the stored run IDs in sorted order.
func (s *Store) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.blobs))
	for k := range s.blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
