package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore is a process-local LRU with a fixed entry lifetime.
type MemoryStore struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryStore keeps at most size images for ttl each.
func NewMemoryStore(size int, ttl time.Duration) (*MemoryStore, error) {
	if size <= 0 {
		return nil, fmt.Errorf("memory cache size must be positive, got %d", size)
	}
	return &MemoryStore{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}, nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := m.lru.Get(key)
	return data, ok, nil
}

// Put stores data. The LRU applies its own lifetime; ttl is ignored.
func (m *MemoryStore) Put(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.lru.Add(key, data)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) (int, error) {
	n := m.lru.Len()
	m.lru.Purge()
	return n, nil
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
