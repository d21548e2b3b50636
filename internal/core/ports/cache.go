package ports

import (
	"context"
	"time"
)

// CacheStore is the gateway to the key-value store. Implementations must
// map "key absent" to ok=false with a nil error; a non-nil error means
// the store itself failed, which callers treat as a miss.
type CacheStore interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set writes value at key. A ttl <= 0 stores the entry without
	// expiration; it then persists until explicitly deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the entry at key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
