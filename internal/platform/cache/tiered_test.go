package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/monalista/market-core/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// --- Tests ---

func TestTieredGet_L1Hit(t *testing.T) {
	l1, l2 := new(MockStore), new(MockStore)
	store := cache.NewTieredStore(l1, l2, time.Minute)
	ctx := context.Background()

	l1.On("Get", ctx, "k").Return([]byte("v"), true, nil)

	val, found, err := store.Get(ctx, "k")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)
	l2.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestTieredGet_L2HitBackfillsL1(t *testing.T) {
	l1, l2 := new(MockStore), new(MockStore)
	store := cache.NewTieredStore(l1, l2, time.Minute)
	ctx := context.Background()

	l1.On("Get", ctx, "k").Return(nil, false, nil)
	l2.On("Get", ctx, "k").Return([]byte("v"), true, nil)
	l1.On("Set", ctx, "k", []byte("v"), time.Minute).Return(nil)

	val, found, err := store.Get(ctx, "k")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)
	l1.AssertExpectations(t)
}

func TestTieredGet_L1ErrorFallsThrough(t *testing.T) {
	l1, l2 := new(MockStore), new(MockStore)
	store := cache.NewTieredStore(l1, l2, time.Minute)
	ctx := context.Background()

	l1.On("Get", ctx, "k").Return(nil, false, errors.New("l1 broken"))
	l2.On("Get", ctx, "k").Return([]byte("v"), true, nil)
	l1.On("Set", ctx, "k", []byte("v"), time.Minute).Return(nil)

	val, found, err := store.Get(ctx, "k")

	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), val)
}

func TestTieredGet_MissBoth(t *testing.T) {
	l1, l2 := new(MockStore), new(MockStore)
	store := cache.NewTieredStore(l1, l2, time.Minute)
	ctx := context.Background()

	l1.On("Get", ctx, "k").Return(nil, false, nil)
	l2.On("Get", ctx, "k").Return(nil, false, nil)

	_, found, err := store.Get(ctx, "k")

	assert.NoError(t, err)
	assert.False(t, found)
	l1.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTieredSet_ClampsL1TTL(t *testing.T) {
	l1, l2 := new(MockStore), new(MockStore)
	store := cache.NewTieredStore(l1, l2, time.Minute)
	ctx := context.Background()

	// A no-expiry entry must not linger in L1 past the bound.
	l1.On("Set", ctx, "k", []byte("v"), time.Minute).Return(nil)
	l2.On("Set", ctx, "k", []byte("v"), time.Duration(0)).Return(nil)

	err := store.Set(ctx, "k", []byte("v"), 0)

	assert.NoError(t, err)
	l1.AssertExpectations(t)
	l2.AssertExpectations(t)
}

func TestTieredSet_ShortTTLPassesThrough(t *testing.T) {
	l1, l2 := new(MockStore), new(MockStore)
	store := cache.NewTieredStore(l1, l2, time.Minute)
	ctx := context.Background()

	l1.On("Set", ctx, "k", []byte("v"), 10*time.Second).Return(nil)
	l2.On("Set", ctx, "k", []byte("v"), 10*time.Second).Return(nil)

	err := store.Set(ctx, "k", []byte("v"), 10*time.Second)

	assert.NoError(t, err)
}

func TestTieredDelete_HitsBothLevels(t *testing.T) {
	l1, l2 := new(MockStore), new(MockStore)
	store := cache.NewTieredStore(l1, l2, time.Minute)
	ctx := context.Background()

	l1.On("Delete", ctx, "k").Return(errors.New("l1 broken"))
	l2.On("Delete", ctx, "k").Return(nil)

	err := store.Delete(ctx, "k")

	// The L1 failure surfaces, but L2 was still reached.
	assert.Error(t, err)
	l2.AssertExpectations(t)
}
