package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/monalista/market-core/internal/core/ports"
)

// MemoryStore is an in-process L1 cache in front of the remote store.
type MemoryStore struct {
	c *ristretto.Cache[string, []byte]
}

var _ ports.CacheStore = (*MemoryStore)(nil)

// NewMemoryStore creates a ristretto-backed cache. maxCostBytes is the
// maximum total size of cached values in bytes.
func NewMemoryStore(maxCostBytes int64) (*MemoryStore, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &MemoryStore{c: c}, nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := m.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.c.Del(key)
	return nil
}

// Close shuts down the cache and releases resources.
func (m *MemoryStore) Close() {
	m.c.Close()
}
