package interfaces

import "context"

//go:generate mockgen -package=mock -source=blobstore.go -destination=mock/blobstore.go

// BlobStore defines the contract for server-side storage of serialized
// cache maps, keyed by test-run ID.
type BlobStore interface {
	Get(ctx context.Context, runID string) ([]byte, bool, error)
	Set(ctx context.Context, runID string, data []byte) error
	Delete(ctx context.Context, runID string) error
	Keys(ctx context.Context) ([]string, error)
}
