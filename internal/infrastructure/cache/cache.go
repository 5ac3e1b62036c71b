package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kinai9661/AIPro/internal/config"
	"github.com/kinai9661/AIPro/internal/domain/generation"
	"github.com/kinai9661/AIPro/internal/infrastructure/metrics"
)

// Store is a generation cache backend with an admin surface.
type Store interface {
	generation.CacheStore
	// Clear removes every entry under the store's namespace and returns how
	// many were dropped.
	Clear(ctx context.Context) (int, error)
	Name() string
	Ping(ctx context.Context) error
	Close() error
}

// New builds the backend selected by CACHE_BACKEND. It returns (nil, nil)
// when caching is disabled.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (Store, error) {
	log = log.With().Str("component", "generation-cache").Logger()

	var (
		store Store
		err   error
	)
	switch cfg.CacheBackend {
	case config.CacheBackendNone:
		log.Info().Msg("generation cache disabled")
		return nil, nil
	case config.CacheBackendMemory:
		store, err = NewMemoryStore(cfg.CacheMemorySize, cfg.CacheTTL)
	case config.CacheBackendRedis:
		store, err = NewRedisStore(ctx, cfg.RedisURL, cfg.CacheKeyPrefix, log)
	case config.CacheBackendS3:
		store, err = NewS3Store(ctx, S3Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			AccessKeyID:  cfg.S3AccessKeyID,
			SecretKey:    cfg.S3SecretKey,
			UsePathStyle: cfg.S3UsePathStyle,
			KeyPrefix:    cfg.CacheKeyPrefix,
		}, log)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s cache: %w", cfg.CacheBackend, err)
	}

	log.Info().Str("backend", store.Name()).Dur("ttl", cfg.CacheTTL).Msg("generation cache ready")
	return Instrument(store), nil
}

type instrumented struct {
	Store
}

// Instrument records hit/miss metrics around s.
func Instrument(s Store) Store {
	return instrumented{Store: s}
}

func (i instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := i.Store.Get(ctx, key)
	if err == nil {
		metrics.RecordCacheLookup(i.Store.Name(), ok)
	}
	return data, ok, err
}

func (i instrumented) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return i.Store.Put(ctx, key, data, ttl)
}
