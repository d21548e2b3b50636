package cache

import (
	"context"
	"errors"
	"time"

	"github.com/monalista/market-core/internal/core/ports"
)

// TieredStore layers an in-process L1 over the remote L2. Get checks L1
// first and backfills it on an L2 hit; Set and Delete hit both levels.
// An L1 failure never masks the L2: reads fall through, writes and
// deletes always reach the remote store.
type TieredStore struct {
	l1       ports.CacheStore
	l2       ports.CacheStore
	l1Expire time.Duration
}

var _ ports.CacheStore = (*TieredStore)(nil)

// NewTieredStore composes the two levels. l1Expire bounds how long L2
// backfill entries live in L1, so a short remote TTL is not stretched
// by the local copy.
func NewTieredStore(l1, l2 ports.CacheStore, l1Expire time.Duration) *TieredStore {
	return &TieredStore{l1: l1, l2: l2, l1Expire: l1Expire}
}

func (t *TieredStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := t.l1.Get(ctx, key)
	if err == nil && found {
		return val, true, nil
	}

	val, found, err = t.l2.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if found {
		_ = t.l1.Set(ctx, key, val, t.l1Expire)
		return val, true, nil
	}
	return nil, false, nil
}

func (t *TieredStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	l1TTL := ttl
	if l1TTL <= 0 || l1TTL > t.l1Expire {
		l1TTL = t.l1Expire
	}
	l1Err := t.l1.Set(ctx, key, value, l1TTL)
	l2Err := t.l2.Set(ctx, key, value, ttl)
	return errors.Join(l1Err, l2Err)
}

func (t *TieredStore) Delete(ctx context.Context, key string) error {
	l1Err := t.l1.Delete(ctx, key)
	l2Err := t.l2.Delete(ctx, key)
	return errors.Join(l1Err, l2Err)
}
