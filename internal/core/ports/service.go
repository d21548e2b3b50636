package ports

import (
	"context"

	"github.com/monalista/market-core/internal/core/domain"
)

type MarketService interface {
	// Auctions returns all currently valid auctions.
	Auctions(ctx context.Context) ([]domain.Auction, error)

	// Auction returns one auction with its winning bid. id is the decimal
	// auction id.
	Auction(ctx context.Context, id string) (*domain.AuctionDetail, error)

	// Listings returns all currently valid direct listings.
	Listings(ctx context.Context) ([]domain.DirectListing, error)

	// Listing returns one direct listing. id is the decimal listing id.
	Listing(ctx context.Context, id string) (*domain.DirectListing, error)

	// Tokens returns the fungible-token portfolio of a wallet, native
	// balance included.
	Tokens(ctx context.Context, address string) (*domain.TokenPortfolio, error)

	// NFTs returns one page of a wallet's NFT holdings. Pages start at 1.
	NFTs(ctx context.Context, address string, page int) (*domain.NFTPage, error)

	// NFT returns indexed metadata for a single NFT.
	NFT(ctx context.Context, chainID int, collectionAddress, tokenID string) (*domain.NFTMetadata, error)

	// Collection returns indexed collection metadata; nil when unknown.
	Collection(ctx context.Context, address string) (*domain.Collection, error)

	// TokenImage returns the icon of a token.
	TokenImage(ctx context.Context, chainName, tokenAddress string) (*domain.TokenImage, error)

	// Theme returns a user's stored theme preference, or the default.
	Theme(ctx context.Context, fid string) (string, error)

	// SetTheme stores a user's theme preference.
	SetTheme(ctx context.Context, fid, theme string) error

	// Invalidate deletes the given cache keys, best effort. It never fails.
	Invalidate(ctx context.Context, keys []string)

	// NotifyOutbid pushes an outbid notification to the previous bidder.
	NotifyOutbid(ctx context.Context, previousBidder, auctionID, nftName string) error
}
