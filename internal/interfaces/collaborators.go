package interfaces

import (
	"context"

	"go-replay-cache/internal/models"
)

// LoadFunc retrieves a previously persisted cache map. A failure here puts
// the interceptor's readiness gate into its failed terminal state.
type LoadFunc func(ctx context.Context) (models.CacheMap, error)

// PersistFunc durably stores the given cache map. A failure fails the
// wrapped call that triggered the persist.
type PersistFunc func(ctx context.Context, m models.CacheMap) error
