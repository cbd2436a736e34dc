package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"go-replay-cache/internal/config"
	"go-replay-cache/internal/httpserver"
	"go-replay-cache/internal/interfaces"
	"go-replay-cache/internal/store/bigcache"
	"go-replay-cache/internal/store/memory"
	"go-replay-cache/internal/store/redis"
)

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
type CompositionRoot struct {
	Config     *config.Config
	Logger     *zap.Logger
	Store      interfaces.BlobStore
	HTTPServer *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration (defines how components should be configured)
// 3. Blob store (recording storage backend)
// 4. HTTP Server (uses all above components)
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initStore(); err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}

	root.HTTPServer = httpserver.NewServer(root.Store, root.Logger)

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("REPLAY_CONFIG_FILE")
	if configPath == "" {
		r.Logger.Info("No config file set, using defaults")
		r.Config = config.Default()
		return nil
	}

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// initStore initializes the configured recording storage backend
func (r *CompositionRoot) initStore() error {
	switch r.Config.Store {
	case config.StoreBigCache:
		store, err := bigcache.New(&r.Config.BigCache, r.Logger)
		if err != nil {
			return err
		}
		r.Store = store
		r.Logger.Info("BigCache store initialized", zap.Int("size_mb", r.Config.BigCache.SizeMB))

	case config.StoreRedis:
		redisURL := GetRedisURL(r.Logger)

		redisClient, err := redis.NewClient(&r.Config.Redis, redisURL, r.Logger)
		if err != nil {
			r.Logger.Warn("Failed to connect to Redis, falling back to in-memory store",
				zap.String("redis_url", redisURL),
				zap.Error(err))
			r.Store = memory.New()
			return nil
		}

		r.Store = redis.New(&r.Config.Redis, redisClient, r.Logger)
		r.Logger.Info("Redis store initialized", zap.String("redis_url", redisURL))

	default:
		r.Store = memory.New()
		r.Logger.Info("In-memory store initialized")
	}

	return nil
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errors []error

	// Sync logger
	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			errors = append(errors, fmt.Errorf("failed to sync logger: %w", err))
		}
	}

	// Close the store if the backend holds resources
	if closer, ok := r.Store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errors = append(errors, fmt.Errorf("failed to close store: %w", err))
		}
	}

	if len(errors) > 0 {
		return errors[0]
	}

	return nil
}
