package ports

import (
	"context"
	"math/big"

	"github.com/monalista/market-core/internal/core/domain"
)

// MarketplaceReader reads marketplace state from the chain.
type MarketplaceReader interface {
	// GetAllValidAuctions returns every auction that is currently active.
	GetAllValidAuctions(ctx context.Context) ([]domain.Auction, error)

	// GetAuction returns the auction with the given id, or domain.ErrNotFound.
	GetAuction(ctx context.Context, id *big.Int) (*domain.Auction, error)

	// GetWinningBid returns the current winning bid of an auction, or nil
	// when no bid has been placed.
	GetWinningBid(ctx context.Context, auctionID *big.Int) (*domain.Bid, error)

	// GetAllValidListings returns every direct listing that is currently active.
	GetAllValidListings(ctx context.Context) ([]domain.DirectListing, error)

	// GetListing returns the listing with the given id, or domain.ErrNotFound.
	GetListing(ctx context.Context, id *big.Int) (*domain.DirectListing, error)

	// NativeBalance returns the native-currency balance of an address in wei.
	NativeBalance(ctx context.Context, address string) (*big.Int, error)
}
