/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/monalista/market-core/internal/core/domain"
	"github.com/monalista/market-core/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// DefaultTheme is returned when a user has no stored preference.
const DefaultTheme = "black"

type marketService struct {
	cache    ports.CacheStore
	market   ports.MarketplaceReader
	indexer  ports.IndexerClient
	images   ports.ImageSource
	notifier ports.Notifier
	log      *slog.Logger

	nativeSymbol  string
	nativeName    string
	publicBaseURL string
}

// Ensure interface implementation
var _ ports.MarketService = (*marketService)(nil)

// Deps bundles the collaborators of the market service.
type Deps struct {
	Cache    ports.CacheStore
	Market   ports.MarketplaceReader
	Indexer  ports.IndexerClient
	Images   ports.ImageSource
	Notifier ports.Notifier
	Log      *slog.Logger

	NativeSymbol  string
	NativeName    string
	PublicBaseURL string
}

func NewMarketService(d Deps) ports.MarketService {
	return &marketService{
		cache:         d.Cache,
		market:        d.Market,
		indexer:       d.Indexer,
		images:        d.Images,
		notifier:      d.Notifier,
		log:           d.Log,
		nativeSymbol:  d.NativeSymbol,
		nativeName:    d.NativeName,
		publicBaseURL: d.PublicBaseURL,
	}
}

// fetchWithCache is the read-through path shared by every resource:
// cache hit returns the stored value unchanged; on miss the fetch runs
// exactly once and its result is written back with the TTL it decided
// (0 = no expiration). Caching is best effort on both sides: store
// errors degrade to a miss on read and are swallowed on write.
func fetchWithCache[T any](ctx context.Context, s *marketService, key string, fetch func(context.Context) (T, time.Duration, error)) (T, error) {
	var zero T
	if data, ok := s.cacheGet(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		s.log.Warn("discarding undecodable cache entry", "key", key)
	}

	val, ttl, err := fetch(ctx)
	if err != nil {
		return zero, err
	}
	s.cacheSet(ctx, key, val, ttl)
	return val, nil
}

func (s *marketService) Auctions(ctx context.Context) ([]domain.Auction, error) {
	return fetchWithCache(ctx, s, AuctionsKey, func(ctx context.Context) ([]domain.Auction, time.Duration, error) {
		auctions, err := s.market.GetAllValidAuctions(ctx)
		if err != nil {
			return nil, 0, err
		}
		return auctions, VolatileTTL, nil
	})
}

func (s *marketService) Auction(ctx context.Context, id string) (*domain.AuctionDetail, error) {
	auctionID, ok := new(big.Int).SetString(id, 10)
	if !ok {
		return nil, fmt.Errorf("%w: auction id must be a decimal integer", domain.ErrInvalidInput)
	}

	return fetchWithCache(ctx, s, AuctionKey(id), func(ctx context.Context) (*domain.AuctionDetail, time.Duration, error) {
		var (
			auction *domain.Auction
			bid     *domain.Bid
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			auction, err = s.market.GetAuction(gctx, auctionID)
			return err
		})
		g.Go(func() error {
			var err error
			bid, err = s.market.GetWinningBid(gctx, auctionID)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}

		detail := &domain.AuctionDetail{Auction: *auction, WinningBid: bid}
		return detail, listingTTL(auction.Status), nil
	})
}

func (s *marketService) Listings(ctx context.Context) ([]domain.DirectListing, error) {
	return fetchWithCache(ctx, s, ListingsKey, func(ctx context.Context) ([]domain.DirectListing, time.Duration, error) {
		listings, err := s.market.GetAllValidListings(ctx)
		if err != nil {
			return nil, 0, err
		}
		return listings, VolatileTTL, nil
	})
}

func (s *marketService) Listing(ctx context.Context, id string) (*domain.DirectListing, error) {
	listingID, ok := new(big.Int).SetString(id, 10)
	if !ok {
		return nil, fmt.Errorf("%w: listing id must be a decimal integer", domain.ErrInvalidInput)
	}

	return fetchWithCache(ctx, s, ListingKey(id), func(ctx context.Context) (*domain.DirectListing, time.Duration, error) {
		listing, err := s.market.GetListing(ctx, listingID)
		if err != nil {
			return nil, 0, err
		}
		return listing, listingTTL(listing.Status), nil
	})
}

func (s *marketService) Tokens(ctx context.Context, address string) (*domain.TokenPortfolio, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", domain.ErrInvalidInput)
	}

	return fetchWithCache(ctx, s, TokensKey(address), func(ctx context.Context) (*domain.TokenPortfolio, time.Duration, error) {
		tokens, err := s.indexer.TokenBalances(ctx, address, PageSize)
		if err != nil {
			return nil, 0, err
		}

		// The native balance falls back to the ERC-20 list alone on failure.
		if bal, err := s.market.NativeBalance(ctx, address); err != nil {
			s.log.Warn("native balance read failed", "address", address, "error", err)
		} else {
			native := domain.OwnedToken{
				TokenAddress: "native",
				Symbol:       s.nativeSymbol,
				Name:         s.nativeName,
				Balance:      bal.String(),
			}
			tokens = append([]domain.OwnedToken{native}, tokens...)
		}

		return &domain.TokenPortfolio{Tokens: tokens}, VolatileTTL, nil
	})
}

func (s *marketService) NFTs(ctx context.Context, address string, page int) (*domain.NFTPage, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", domain.ErrInvalidInput)
	}
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", domain.ErrInvalidInput)
	}

	return fetchWithCache(ctx, s, NFTsKey(address, page), func(ctx context.Context) (*domain.NFTPage, time.Duration, error) {
		// The indexer paginates by limit only, so offset pagination is
		// approximated by over-fetching page*PageSize items and slicing
		// the last window locally.
		items, err := s.indexer.OwnedNFTs(ctx, address, page*PageSize)
		if err != nil {
			return nil, 0, err
		}

		normalized := make([]json.RawMessage, 0, len(items))
		for _, item := range items {
			n, err := decimalizeJSON(item)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: malformed indexer item: %v", domain.ErrInternal, err)
			}
			normalized = append(normalized, n)
		}

		pageObj := &domain.NFTPage{
			NFTs:    window(normalized, page, PageSize),
			HasMore: len(items) == page*PageSize,
		}
		return pageObj, VolatileTTL, nil
	})
}

func (s *marketService) NFT(ctx context.Context, chainID int, collectionAddress, tokenID string) (*domain.NFTMetadata, error) {
	if collectionAddress == "" || tokenID == "" || chainID <= 0 {
		return nil, fmt.Errorf("%w: collectionAddress, tokenId and chainId are required", domain.ErrInvalidInput)
	}

	return fetchWithCache(ctx, s, NFTKey(chainID, collectionAddress, tokenID), func(ctx context.Context) (*domain.NFTMetadata, time.Duration, error) {
		nft, err := s.indexer.NFTToken(ctx, chainID, collectionAddress, tokenID)
		if err != nil {
			return nil, 0, err
		}
		// Minted metadata is immutable, cache forever.
		return nft, 0, nil
	})
}

func (s *marketService) Collection(ctx context.Context, address string) (*domain.Collection, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: address is required", domain.ErrInvalidInput)
	}

	return fetchWithCache(ctx, s, CollectionKey(address), func(ctx context.Context) (*domain.Collection, time.Duration, error) {
		collection, err := s.indexer.Collection(ctx, address)
		if err != nil {
			return nil, 0, err
		}
		// A nil collection (unknown to the indexer) is cached too, so
		// repeated lookups of an unindexed address stay cheap.
		return collection, CollectionTTL, nil
	})
}

func (s *marketService) TokenImage(ctx context.Context, chainName, tokenAddress string) (*domain.TokenImage, error) {
	if chainName == "" || tokenAddress == "" {
		return nil, fmt.Errorf("%w: chainName and tokenAddress are required", domain.ErrInvalidInput)
	}

	return fetchWithCache(ctx, s, TokenImageKey(chainName, tokenAddress), func(ctx context.Context) (*domain.TokenImage, time.Duration, error) {
		img, err := s.images.Resolve(ctx, chainName, tokenAddress)
		if err != nil {
			return nil, 0, err
		}
		return img, 0, nil
	})
}

func (s *marketService) Theme(ctx context.Context, fid string) (string, error) {
	if fid == "" {
		return DefaultTheme, nil
	}
	data, ok := s.cacheGet(ctx, ThemeKey(fid))
	if !ok {
		return DefaultTheme, nil
	}
	return string(data), nil
}

func (s *marketService) SetTheme(ctx context.Context, fid, theme string) error {
	if fid == "" || theme == "" {
		return fmt.Errorf("%w: fid and theme are required", domain.ErrInvalidInput)
	}
	// Unlike resource caching, the theme write is the operation itself.
	if err := s.cache.Set(ctx, ThemeKey(fid), []byte(theme), 0); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	return nil
}

func (s *marketService) Invalidate(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}

	// Fire all deletes concurrently; a failed key never aborts the rest.
	// This is a coherency hint, not a transaction, so failures are only
	// logged and the caller always gets an acknowledgement.
	g := new(errgroup.Group)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			if err := s.cache.Delete(ctx, key); err != nil {
				s.log.Error("cache invalidation failed", "key", key, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *marketService) NotifyOutbid(ctx context.Context, previousBidder, auctionID, nftName string) error {
	if previousBidder == "" || auctionID == "" {
		return fmt.Errorf("%w: previousBidder and auctionId are required", domain.ErrInvalidInput)
	}

	fid, err := s.notifier.LookupFidByAddress(ctx, previousBidder)
	if err != nil {
		return err
	}

	body := "Someone outbid you."
	if nftName != "" {
		body = fmt.Sprintf("Someone outbid you on %s", nftName)
	}
	targetURL := fmt.Sprintf("%s/auction/%s", s.publicBaseURL, auctionID)

	return s.notifier.SendNotification(ctx, fid, "You've been outbid!", body, targetURL)
}

func (s *marketService) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		// Store errors degrade to a miss but are logged distinctly so an
		// unhealthy store is visible.
		s.log.Warn("cache read failed, treating as miss", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}

func (s *marketService) cacheSet(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("failed to marshal cache value", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}
