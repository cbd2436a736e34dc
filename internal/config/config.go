package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Store backend selectors
const (
	StoreMemory   = "memory"
	StoreBigCache = "bigcache"
	StoreRedis    = "redis"
)

// Config represents the replay server configuration
type Config struct {
	ListenAddr string         `yaml:"listen_addr"`
	Store      string         `yaml:"store"`
	BigCache   BigCacheConfig `yaml:"bigcache"`
	Redis      RedisConfig    `yaml:"redis"`
}

// BigCacheConfig configures the bounded in-memory store
type BigCacheConfig struct {
	SizeMB            int `yaml:"size_mb"`
	LifeWindowMinutes int `yaml:"life_window_minutes"`
}

// RedisConfig configures the Redis-backed store
type RedisConfig struct {
	ConnectTimeoutMs int    `yaml:"connect_timeout_ms"`
	SendTimeoutMs    int    `yaml:"send_timeout_ms"`
	ReadTimeoutMs    int    `yaml:"read_timeout_ms"`
	PoolSize         int    `yaml:"pool_size"`
	KeyPrefix        string `yaml:"key_prefix"`
	TTLSeconds       int    `yaml:"ttl_seconds"`
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns a configuration with every default applied, used when no
// config file is present.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":9090"
	}
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.BigCache.SizeMB == 0 {
		c.BigCache.SizeMB = 128
	}
	if c.BigCache.LifeWindowMinutes == 0 {
		c.BigCache.LifeWindowMinutes = 120
	}
	if c.Redis.ConnectTimeoutMs == 0 {
		c.Redis.ConnectTimeoutMs = 2000
	}
	if c.Redis.SendTimeoutMs == 0 {
		c.Redis.SendTimeoutMs = 2000
	}
	if c.Redis.ReadTimeoutMs == 0 {
		c.Redis.ReadTimeoutMs = 2000
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "replay:"
	}
}

// validate rejects unknown store backends
func (c *Config) validate() error {
	switch c.Store {
	case StoreMemory, StoreBigCache, StoreRedis:
		return nil
	default:
		return fmt.Errorf("invalid store '%s': must be one of '%s', '%s', '%s'",
			c.Store, StoreMemory, StoreBigCache, StoreRedis)
	}
}
