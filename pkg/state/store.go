package state

import (
	"context"
	"errors"
	"time"

	"github.com/harun/articuno/internal/observability"
	"github.com/redis/go-redis/v9"
)

// Storage keys.
const (
	KeyCurrentSessionID = "current_session_id"
	KeyCurrentBot       = "current_bot"
)

// Store is a persistent string key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreType represents the type of store.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeFile   StoreType = "file"
	StoreTypeSQLite StoreType = "sqlite"
	StoreTypeRedis  StoreType = "redis"
)

var (
	// ErrInvalidStoreType is returned for unknown store types.
	ErrInvalidStoreType = errors.New("invalid store type")
	// ErrInvalidConfig is returned when a driver is missing required options.
	ErrInvalidConfig = errors.New("invalid store configuration")
)

// StoreOption is a functional option for configuring a store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	path        string
	redisClient *redis.Client
	redisTTL    time.Duration
	keyPrefix   string
}

// WithPath sets the file or sqlite database path.
func WithPath(path string) StoreOption {
	return func(c *storeConfig) {
		c.path = path
	}
}

// WithRedisClient sets the Redis client for the Redis store.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisTTL sets the TTL for Redis keys. Zero keeps keys forever.
func WithRedisTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.redisTTL = ttl
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) StoreOption {
	return func(c *storeConfig) {
		c.keyPrefix = prefix
	}
}

// NewStore creates a Store of the given type. The returned store records
// operation latency in prometheus.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	cfg := &storeConfig{keyPrefix: "articuno:"}
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		store Store
		err   error
	)
	switch storeType {
	case StoreTypeMemory:
		store = NewMemoryStore()
	case StoreTypeFile:
		if cfg.path == "" {
			return nil, ErrInvalidConfig
		}
		store, err = NewFileStore(cfg.path)
	case StoreTypeSQLite:
		if cfg.path == "" {
			return nil, ErrInvalidConfig
		}
		store, err = NewSQLiteStore(cfg.path)
	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		store = NewRedisStore(cfg.redisClient, cfg.keyPrefix, cfg.redisTTL)
	default:
		return nil, ErrInvalidStoreType
	}
	if err != nil {
		return nil, err
	}

	return &instrumentedStore{next: store, driver: string(storeType)}, nil
}

type instrumentedStore struct {
	next   Store
	driver string
}

func (s *instrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	defer func() { observability.RecordStorageOp(s.driver, "get", time.Since(start)) }()
	return s.next.Get(ctx, key)
}

func (s *instrumentedStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	defer func() { observability.RecordStorageOp(s.driver, "set", time.Since(start)) }()
	return s.next.Set(ctx, key, value)
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	defer func() { observability.RecordStorageOp(s.driver, "delete", time.Since(start)) }()
	return s.next.Delete(ctx, key)
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}
