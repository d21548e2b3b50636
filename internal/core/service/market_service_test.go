package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/monalista/market-core/internal/core/domain"
	"github.com/monalista/market-core/internal/core/ports"
	"github.com/monalista/market-core/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockCacheStore struct {
	mock.Mock
}

func (m *MockCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockMarketplaceReader struct {
	mock.Mock
}

func (m *MockMarketplaceReader) GetAllValidAuctions(ctx context.Context) ([]domain.Auction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Auction), args.Error(1)
}

func (m *MockMarketplaceReader) GetAuction(ctx context.Context, id *big.Int) (*domain.Auction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auction), args.Error(1)
}

func (m *MockMarketplaceReader) GetWinningBid(ctx context.Context, auctionID *big.Int) (*domain.Bid, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bid), args.Error(1)
}

func (m *MockMarketplaceReader) GetAllValidListings(ctx context.Context) ([]domain.DirectListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectListing), args.Error(1)
}

func (m *MockMarketplaceReader) GetListing(ctx context.Context, id *big.Int) (*domain.DirectListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectListing), args.Error(1)
}

func (m *MockMarketplaceReader) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

type MockIndexerClient struct {
	mock.Mock
}

func (m *MockIndexerClient) TokenBalances(ctx context.Context, address string, first int) ([]domain.OwnedToken, error) {
	args := m.Called(ctx, address, first)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnedToken), args.Error(1)
}

func (m *MockIndexerClient) OwnedNFTs(ctx context.Context, address string, limit int) ([]json.RawMessage, error) {
	args := m.Called(ctx, address, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockIndexerClient) NFTToken(ctx context.Context, chainID int, collectionAddress, tokenID string) (*domain.NFTMetadata, error) {
	args := m.Called(ctx, chainID, collectionAddress, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NFTMetadata), args.Error(1)
}

func (m *MockIndexerClient) Collection(ctx context.Context, address string) (*domain.Collection, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

type MockImageSource struct {
	mock.Mock
}

func (m *MockImageSource) Resolve(ctx context.Context, chainName, tokenAddress string) (*domain.TokenImage, error) {
	args := m.Called(ctx, chainName, tokenAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenImage), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) LookupFidByAddress(ctx context.Context, address string) (int64, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotifier) SendNotification(ctx context.Context, fid int64, title, body, targetURL string) error {
	args := m.Called(ctx, fid, title, body, targetURL)
	return args.Error(0)
}

// --- Helpers ---

type testDeps struct {
	cache    *MockCacheStore
	market   *MockMarketplaceReader
	indexer  *MockIndexerClient
	images   *MockImageSource
	notifier *MockNotifier
}

func newTestService() (ports.MarketService, *testDeps) {
	d := &testDeps{
		cache:    new(MockCacheStore),
		market:   new(MockMarketplaceReader),
		indexer:  new(MockIndexerClient),
		images:   new(MockImageSource),
		notifier: new(MockNotifier),
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	svc := service.NewMarketService(service.Deps{
		Cache:         d.cache,
		Market:        d.market,
		Indexer:       d.indexer,
		Images:        d.images,
		Notifier:      d.notifier,
		Log:           logger,
		NativeSymbol:  "ETH",
		NativeName:    "Ether",
		PublicBaseURL: "https://market.test",
	})
	return svc, d
}

// --- Tests ---

func TestAuctions_CacheHit(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	cached := []domain.Auction{{ID: domain.NewBigInt(7), Status: domain.StatusActive}}
	data, _ := json.Marshal(cached)
	d.cache.On("Get", ctx, service.AuctionsKey).Return(data, true, nil)

	auctions, err := svc.Auctions(ctx)

	assert.NoError(t, err)
	assert.Len(t, auctions, 1)
	assert.Equal(t, "7", auctions[0].ID.String())

	// A hit must never reach the chain
	d.market.AssertNotCalled(t, "GetAllValidAuctions")
}

func TestAuctions_CacheMiss_FetchesAndStores(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	fetched := []domain.Auction{{ID: domain.NewBigInt(1), Status: domain.StatusActive}}
	d.cache.On("Get", ctx, service.AuctionsKey).Return(nil, false, nil)
	d.market.On("GetAllValidAuctions", ctx).Return(fetched, nil).Once()
	d.cache.On("Set", ctx, service.AuctionsKey, mock.Anything, service.VolatileTTL).Return(nil)

	auctions, err := svc.Auctions(ctx)

	assert.NoError(t, err)
	assert.Len(t, auctions, 1)
	d.market.AssertExpectations(t)
	d.cache.AssertExpectations(t)
}

func TestAuctions_StoreError_DegradesToMiss(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	fetched := []domain.Auction{{ID: domain.NewBigInt(2)}}
	d.cache.On("Get", ctx, service.AuctionsKey).Return(nil, false, errors.New("connection refused"))
	d.market.On("GetAllValidAuctions", ctx).Return(fetched, nil)
	// The write may fail too; the caller still gets the data.
	d.cache.On("Set", ctx, service.AuctionsKey, mock.Anything, service.VolatileTTL).Return(errors.New("connection refused"))

	auctions, err := svc.Auctions(ctx)

	assert.NoError(t, err)
	assert.Len(t, auctions, 1)
}

func TestAuctions_UpstreamError_NothingCached(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	d.cache.On("Get", ctx, service.AuctionsKey).Return(nil, false, nil)
	d.market.On("GetAllValidAuctions", ctx).Return(nil, domain.ErrUpstream)

	_, err := svc.Auctions(ctx)

	assert.ErrorIs(t, err, domain.ErrUpstream)
	d.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuction_InvalidID(t *testing.T) {
	svc, d := newTestService()

	_, err := svc.Auction(context.Background(), "not-a-number")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	d.cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestAuction_ActiveStatus_CachedWithTTL(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	auction := &domain.Auction{ID: domain.NewBigInt(5), Status: domain.StatusActive}
	bid := &domain.Bid{AuctionID: domain.NewBigInt(5), BidderAddress: "0xabc"}

	d.cache.On("Get", ctx, service.AuctionKey("5")).Return(nil, false, nil)
	d.market.On("GetAuction", mock.Anything, big.NewInt(5)).Return(auction, nil)
	d.market.On("GetWinningBid", mock.Anything, big.NewInt(5)).Return(bid, nil)
	d.cache.On("Set", ctx, service.AuctionKey("5"), mock.Anything, service.VolatileTTL).Return(nil)

	detail, err := svc.Auction(ctx, "5")

	assert.NoError(t, err)
	assert.Equal(t, "0xabc", detail.WinningBid.BidderAddress)
	d.cache.AssertExpectations(t)
}

func TestAuction_TerminalStatus_CachedForever(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	auction := &domain.Auction{ID: domain.NewBigInt(9), Status: domain.StatusCompleted}

	d.cache.On("Get", ctx, service.AuctionKey("9")).Return(nil, false, nil)
	d.market.On("GetAuction", mock.Anything, big.NewInt(9)).Return(auction, nil)
	d.market.On("GetWinningBid", mock.Anything, big.NewInt(9)).Return(nil, nil)

	// Zero TTL: a finished auction never changes again.
	d.cache.On("Set", ctx, service.AuctionKey("9"), mock.Anything, time.Duration(0)).Return(nil)

	detail, err := svc.Auction(ctx, "9")

	assert.NoError(t, err)
	assert.Nil(t, detail.WinningBid)
	d.cache.AssertExpectations(t)
}

func TestListing_NotFoundPropagates(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	d.cache.On("Get", ctx, service.ListingKey("404")).Return(nil, false, nil)
	d.market.On("GetListing", ctx, big.NewInt(404)).Return(nil, domain.ErrNotFound)

	_, err := svc.Listing(ctx, "404")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	d.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTokens_PrependsNativeBalance(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()
	address := "0xWallet"

	erc20s := []domain.OwnedToken{{TokenAddress: "0xToken", Symbol: "USDC", Balance: "100"}}
	d.cache.On("Get", ctx, service.TokensKey(address)).Return(nil, false, nil)
	d.indexer.On("TokenBalances", ctx, address, service.PageSize).Return(erc20s, nil)
	d.market.On("NativeBalance", ctx, address).Return(big.NewInt(1500000000000000000), nil)
	d.cache.On("Set", ctx, service.TokensKey(address), mock.Anything, service.VolatileTTL).Return(nil)

	portfolio, err := svc.Tokens(ctx, address)

	assert.NoError(t, err)
	assert.Len(t, portfolio.Tokens, 2)
	assert.Equal(t, "ETH", portfolio.Tokens[0].Symbol)
	assert.Equal(t, "1500000000000000000", portfolio.Tokens[0].Balance)
	assert.Equal(t, "USDC", portfolio.Tokens[1].Symbol)
}

func TestTokens_NativeBalanceFailure_IsBestEffort(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()
	address := "0xWallet"

	erc20s := []domain.OwnedToken{{TokenAddress: "0xToken", Symbol: "USDC", Balance: "100"}}
	d.cache.On("Get", ctx, service.TokensKey(address)).Return(nil, false, nil)
	d.indexer.On("TokenBalances", ctx, address, service.PageSize).Return(erc20s, nil)
	d.market.On("NativeBalance", ctx, address).Return(nil, errors.New("rpc timeout"))
	d.cache.On("Set", ctx, service.TokensKey(address), mock.Anything, service.VolatileTTL).Return(nil)

	portfolio, err := svc.Tokens(ctx, address)

	assert.NoError(t, err)
	assert.Len(t, portfolio.Tokens, 1)
	assert.Equal(t, "USDC", portfolio.Tokens[0].Symbol)
}

func TestNFTs_WindowsAndNormalizes(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()
	address := "0xWallet"

	// Full over-fetched list: hasMore must be true.
	items := make([]json.RawMessage, service.PageSize)
	for i := range items {
		items[i] = json.RawMessage(`{"token_id":123456789012345678901234567890,"name":"x"}`)
	}
	d.cache.On("Get", ctx, service.NFTsKey(address, 1)).Return(nil, false, nil)
	d.indexer.On("OwnedNFTs", ctx, address, service.PageSize).Return(items, nil)
	d.cache.On("Set", ctx, service.NFTsKey(address, 1), mock.Anything, service.VolatileTTL).Return(nil)

	page, err := svc.NFTs(ctx, address, 1)

	assert.NoError(t, err)
	assert.True(t, page.HasMore)
	assert.Len(t, page.NFTs, service.PageSize)
	// Wide integers come back as decimal strings.
	assert.Contains(t, string(page.NFTs[0]), `"123456789012345678901234567890"`)
}

func TestNFTs_SecondPage_OverFetches(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()
	address := "0xWallet"

	// 60 items for page 2: window is items[50:60], short of 100 means no more.
	items := make([]json.RawMessage, 60)
	for i := range items {
		items[i] = json.RawMessage(`{"name":"a"}`)
	}
	d.cache.On("Get", ctx, service.NFTsKey(address, 2)).Return(nil, false, nil)
	d.indexer.On("OwnedNFTs", ctx, address, 2*service.PageSize).Return(items, nil)
	d.cache.On("Set", ctx, service.NFTsKey(address, 2), mock.Anything, service.VolatileTTL).Return(nil)

	page, err := svc.NFTs(ctx, address, 2)

	assert.NoError(t, err)
	assert.False(t, page.HasMore)
	assert.Len(t, page.NFTs, 10)
}

func TestNFTs_InvalidPage(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.NFTs(context.Background(), "0xWallet", 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNFT_CachedIndefinitely(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	meta := &domain.NFTMetadata{TokenID: "42", Name: "Mona #42"}
	key := service.NFTKey(8453, "0xCol", "42")
	d.cache.On("Get", ctx, key).Return(nil, false, nil)
	d.indexer.On("NFTToken", ctx, 8453, "0xCol", "42").Return(meta, nil)
	d.cache.On("Set", ctx, key, mock.Anything, time.Duration(0)).Return(nil)

	nft, err := svc.NFT(ctx, 8453, "0xCol", "42")

	assert.NoError(t, err)
	assert.Equal(t, "Mona #42", nft.Name)
	d.cache.AssertExpectations(t)
}

func TestCollection_UnknownCachedAsNil(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()
	address := "0xUnknown"

	d.cache.On("Get", ctx, service.CollectionKey(address)).Return(nil, false, nil)
	d.indexer.On("Collection", ctx, address).Return(nil, nil)
	d.cache.On("Set", ctx, service.CollectionKey(address), mock.Anything, service.CollectionTTL).Return(nil)

	collection, err := svc.Collection(ctx, address)

	assert.NoError(t, err)
	assert.Nil(t, collection)
	d.cache.AssertExpectations(t)
}

func TestTheme_DefaultsOnMiss(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	d.cache.On("Get", ctx, service.ThemeKey("123")).Return(nil, false, nil)

	theme, err := svc.Theme(ctx, "123")

	assert.NoError(t, err)
	assert.Equal(t, service.DefaultTheme, theme)
}

func TestTheme_ReturnsStoredValue(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	d.cache.On("Get", ctx, service.ThemeKey("123")).Return([]byte("purple"), true, nil)

	theme, err := svc.Theme(ctx, "123")

	assert.NoError(t, err)
	assert.Equal(t, "purple", theme)
}

func TestSetTheme_StoreErrorPropagates(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	d.cache.On("Set", ctx, service.ThemeKey("123"), []byte("purple"), time.Duration(0)).Return(errors.New("connection refused"))

	err := svc.SetTheme(ctx, "123", "purple")

	assert.Error(t, err)
}

func TestInvalidate_DeletesEveryKey(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	d.cache.On("Delete", ctx, "auctions").Return(nil)
	d.cache.On("Delete", ctx, "auction:5").Return(errors.New("connection refused"))
	d.cache.On("Delete", ctx, "listings").Return(nil)

	// A failed delete is logged, never surfaced.
	svc.Invalidate(ctx, []string{"auctions", "auction:5", "listings"})

	d.cache.AssertExpectations(t)
}

func TestNotifyOutbid_Success(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	d.notifier.On("LookupFidByAddress", ctx, "0xLoser").Return(int64(777), nil)
	d.notifier.On("SendNotification", ctx, int64(777), "You've been outbid!",
		"Someone outbid you on Mona #42", "https://market.test/auction/5").Return(nil)

	err := svc.NotifyOutbid(ctx, "0xLoser", "5", "Mona #42")

	assert.NoError(t, err)
	d.notifier.AssertExpectations(t)
}

func TestNotifyOutbid_UnknownAddress(t *testing.T) {
	svc, d := newTestService()
	ctx := context.Background()

	d.notifier.On("LookupFidByAddress", ctx, "0xNobody").Return(int64(0), domain.ErrNotFound)

	err := svc.NotifyOutbid(ctx, "0xNobody", "5", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	d.notifier.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
