package ports

import (
	"context"
	"encoding/json"

	"github.com/monalista/market-core/internal/core/domain"
)

// IndexerClient queries the third-party indexing APIs for off-chain views
// of on-chain data (balances, NFT metadata, collection metadata).
type IndexerClient interface {
	// TokenBalances returns up to first fungible-token positions of a wallet.
	TokenBalances(ctx context.Context, address string, first int) ([]domain.OwnedToken, error)

	// OwnedNFTs returns up to limit NFTs held by a wallet, newest first.
	// Items are raw indexer JSON; the caller normalizes and windows them.
	OwnedNFTs(ctx context.Context, address string, limit int) ([]json.RawMessage, error)

	// NFTToken returns indexed metadata for a single NFT, or domain.ErrNotFound.
	NFTToken(ctx context.Context, chainID int, collectionAddress, tokenID string) (*domain.NFTMetadata, error)

	// Collection returns indexed collection metadata, or nil when the
	// indexer has no record of the collection.
	Collection(ctx context.Context, address string) (*domain.Collection, error)
}

// ImageSource resolves a token's icon.
type ImageSource interface {
	// Resolve returns the icon for a token, or domain.ErrNotFound when no
	// source could produce one.
	Resolve(ctx context.Context, chainName, tokenAddress string) (*domain.TokenImage, error)
}
