package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	clearLockName = "lock:cache-clear"
	clearLockTTL  = 30 * time.Second
	scanBatch     = 1000
)

// RedisStore keeps images in Redis (single node or cluster).
type RedisStore struct {
	client    redis.UniversalClient
	rs        *redsync.Redsync
	keyPrefix string
	log       zerolog.Logger
}

// NewRedisStore connects to redisURL, a URL or a comma separated list of
// cluster addresses.
func NewRedisStore(ctx context.Context, redisURL, keyPrefix string, log zerolog.Logger) (*RedisStore, error) {
	if redisURL == "" {
		return nil, errors.New("redis URL must be provided")
	}

	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if len(opts.Addrs) > 1 && opts.DB != 0 {
		log.Warn().Msg("ignoring non-zero DB when using Redis Cluster configuration")
		opts.DB = 0
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return newRedisStore(client, keyPrefix, log), nil
}

func newRedisStore(client redis.UniversalClient, keyPrefix string, log zerolog.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		rs:        redsync.New(goredis.NewPool(client)),
		keyPrefix: keyPrefix,
		log:       log,
	}
}

func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)
			continue
		}

		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}
		opts.Addrs = append(opts.Addrs, parsed.Addr)
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
		if opts.DialTimeout == 0 {
			opts.DialTimeout = parsed.DialTimeout
		}
		if opts.ReadTimeout == 0 {
			opts.ReadTimeout = parsed.ReadTimeout
		}
		if opts.WriteTimeout == 0 {
			opts.WriteTimeout = parsed.WriteTimeout
		}
		if opts.PoolSize == 0 {
			opts.PoolSize = parsed.PoolSize
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, errors.New("no Redis addresses provided")
	}
	return opts, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Clear unlinks every key under the prefix. A distributed lock keeps replicas
// from scanning concurrently.
func (r *RedisStore) Clear(ctx context.Context) (int, error) {
	mutex := r.rs.NewMutex(clearLockName, redsync.WithExpiry(clearLockTTL), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return 0, fmt.Errorf("acquire cache clear lock: %w", err)
	}
	defer func() {
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			r.log.Error().Err(err).Msg("failed to release cache clear lock")
		}
	}()

	cluster, ok := r.client.(*redis.ClusterClient)
	if !ok {
		return r.unlinkPrefix(ctx, r.client)
	}

	var (
		mu      sync.Mutex
		removed int
	)
	err := cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
		n, err := r.unlinkPrefix(ctx, node)
		mu.Lock()
		removed += n
		mu.Unlock()
		return err
	})
	return removed, err
}

func (r *RedisStore) unlinkPrefix(ctx context.Context, client redis.Cmdable) (int, error) {
	removed := 0
	var cursor uint64
	for {
		keys, next, err := client.Scan(ctx, cursor, r.keyPrefix+"*", scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("scan keys: %w", err)
		}
		if len(keys) > 0 {
			pipe := client.Pipeline()
			for _, k := range keys {
				pipe.Unlink(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return removed, fmt.Errorf("unlink keys: %w", err)
			}
			removed += len(keys)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
