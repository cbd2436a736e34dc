package redis

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	redislib "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-replay-cache/internal/config"
	"go-replay-cache/internal/interfaces"
)

// NewClient creates a Redis client from a redis:// URL and verifies
// connectivity before handing it out.
func NewClient(cfg *config.RedisConfig, redisURL string, logger *zap.Logger) (interfaces.RedisClient, error) {
	parsedURL, err := url.Parse(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	host := parsedURL.Hostname()
	port := parsedURL.Port()
	if port == "" {
		port = "6379"
	}

	opts := &redislib.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		DialTimeout:  time.Duration(cfg.ConnectTimeoutMs) * time.Millisecond,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.SendTimeoutMs) * time.Millisecond,
		PoolSize:     cfg.PoolSize,
	}

	if parsedURL.User != nil {
		if password, ok := parsedURL.User.Password(); ok {
			opts.Password = password
		}
	}

	if len(parsedURL.Path) > 1 {
		if db, err := strconv.Atoi(parsedURL.Path[1:]); err == nil {
			opts.DB = db
		}
	}

	client := redislib.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Connected to Redis", zap.String("addr", opts.Addr))
	return client, nil
}
