/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

// Package chain reads marketplace state from the chain over JSON-RPC.
package chain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/monalista/market-core/internal/core/domain"
	"github.com/monalista/market-core/internal/core/ports"
)

// Marketplace reads the MarketplaceV3 contract.
type Marketplace struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	imageABI abi.ABI
	timeout  time.Duration
	log      *slog.Logger
	now      func() time.Time
}

var _ ports.MarketplaceReader = (*Marketplace)(nil)

func NewMarketplace(ctx context.Context, rpcURL, contractAddress string, timeout time.Duration, log *slog.Logger) (*Marketplace, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse marketplace abi: %w", err)
	}
	imgABI, err := abi.JSON(strings.NewReader(tokenImageABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token image abi: %w", err)
	}

	addr := common.HexToAddress(contractAddress)
	return &Marketplace{
		client:   client,
		contract: bind.NewBoundContract(addr, parsed, client, client, client),
		imageABI: imgABI,
		timeout:  timeout,
		log:      log,
		now:      time.Now,
	}, nil
}

// auctionTuple mirrors IEnglishAuctions.Auction for abi unpacking.
type auctionTuple struct {
	AuctionId           *big.Int
	TokenId             *big.Int
	Quantity            *big.Int
	MinimumBidAmount    *big.Int
	BuyoutBidAmount     *big.Int
	TimeBufferInSeconds uint64
	BidBufferBps        uint64
	StartTimestamp      uint64
	EndTimestamp        uint64
	AuctionCreator      common.Address
	AssetContract       common.Address
	Currency            common.Address
	TokenType           uint8
	Status              uint8
}

// listingTuple mirrors IDirectListings.Listing for abi unpacking.
type listingTuple struct {
	ListingId      *big.Int
	TokenId        *big.Int
	Quantity       *big.Int
	PricePerToken  *big.Int
	StartTimestamp *big.Int
	EndTimestamp   *big.Int
	ListingCreator common.Address
	AssetContract  common.Address
	Currency       common.Address
	TokenType      uint8
	Status         uint8
	Reserved       bool
}

// On-chain status enum. ACTIVE/EXPIRED are not stored by the contract;
// they are derived from the timestamps of a CREATED auction or listing.
const (
	statusUnset uint8 = iota
	statusCreated
	statusCompleted
	statusCancelled
)

func (m *Marketplace) deriveStatus(raw uint8, start, end uint64) domain.ListingStatus {
	switch raw {
	case statusCompleted:
		return domain.StatusCompleted
	case statusCancelled:
		return domain.StatusCancelled
	case statusCreated:
		now := uint64(m.now().Unix())
		if now > end {
			return domain.StatusExpired
		}
		if now < start {
			return domain.StatusCreated
		}
		return domain.StatusActive
	default:
		return domain.StatusUnset
	}
}

func tokenType(raw uint8) domain.TokenType {
	if raw == 1 {
		return domain.TokenTypeERC1155
	}
	return domain.TokenTypeERC721
}

func (m *Marketplace) toAuction(t auctionTuple) domain.Auction {
	return domain.Auction{
		ID:                      domain.NewBigIntFromBig(t.AuctionId),
		CreatorAddress:          t.AuctionCreator.Hex(),
		AssetContractAddress:    t.AssetContract.Hex(),
		TokenID:                 domain.NewBigIntFromBig(t.TokenId),
		Quantity:                domain.NewBigIntFromBig(t.Quantity),
		CurrencyContractAddress: t.Currency.Hex(),
		MinimumBidAmount:        domain.NewBigIntFromBig(t.MinimumBidAmount),
		BuyoutBidAmount:         domain.NewBigIntFromBig(t.BuyoutBidAmount),
		TimeBufferInSeconds:     t.TimeBufferInSeconds,
		BidBufferBps:            t.BidBufferBps,
		StartTimeInSeconds:      t.StartTimestamp,
		EndTimeInSeconds:        t.EndTimestamp,
		TokenType:               tokenType(t.TokenType),
		Status:                  m.deriveStatus(t.Status, t.StartTimestamp, t.EndTimestamp),
	}
}

func (m *Marketplace) toListing(t listingTuple) domain.DirectListing {
	start := t.StartTimestamp.Uint64()
	end := t.EndTimestamp.Uint64()
	return domain.DirectListing{
		ID:                      domain.NewBigIntFromBig(t.ListingId),
		CreatorAddress:          t.ListingCreator.Hex(),
		AssetContractAddress:    t.AssetContract.Hex(),
		TokenID:                 domain.NewBigIntFromBig(t.TokenId),
		Quantity:                domain.NewBigIntFromBig(t.Quantity),
		CurrencyContractAddress: t.Currency.Hex(),
		PricePerToken:           domain.NewBigIntFromBig(t.PricePerToken),
		StartTimeInSeconds:      start,
		EndTimeInSeconds:        end,
		IsReservedListing:       t.Reserved,
		TokenType:               tokenType(t.TokenType),
		Status:                  m.deriveStatus(t.Status, start, end),
	}
}

func (m *Marketplace) call(ctx context.Context, out *[]interface{}, method string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	opts := &bind.CallOpts{Context: ctx}
	if err := m.contract.Call(opts, out, method, args...); err != nil {
		// Marketplace reads revert for unknown ids.
		if strings.Contains(err.Error(), "revert") {
			return fmt.Errorf("%s: %w", method, domain.ErrNotFound)
		}
		return fmt.Errorf("%s: %w: %v", method, domain.ErrUpstream, err)
	}
	return nil
}

func (m *Marketplace) GetAuction(ctx context.Context, id *big.Int) (*domain.Auction, error) {
	var out []interface{}
	if err := m.call(ctx, &out, "getAuction", id); err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new(auctionTuple)).(*auctionTuple)
	if raw.Status == statusUnset {
		return nil, fmt.Errorf("auction %s: %w", id, domain.ErrNotFound)
	}
	auction := m.toAuction(raw)
	return &auction, nil
}

func (m *Marketplace) GetWinningBid(ctx context.Context, auctionID *big.Int) (*domain.Bid, error) {
	var out []interface{}
	if err := m.call(ctx, &out, "getWinningBid", auctionID); err != nil {
		return nil, err
	}
	bidder := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	if bidder == (common.Address{}) {
		// No bid placed yet.
		return nil, nil
	}
	currency := *abi.ConvertType(out[1], new(common.Address)).(*common.Address)
	amount := *abi.ConvertType(out[2], new(*big.Int)).(**big.Int)
	return &domain.Bid{
		AuctionID:               domain.NewBigIntFromBig(auctionID),
		BidderAddress:           bidder.Hex(),
		CurrencyContractAddress: currency.Hex(),
		BidAmount:               domain.NewBigIntFromBig(amount),
	}, nil
}

func (m *Marketplace) GetAllValidAuctions(ctx context.Context) ([]domain.Auction, error) {
	total, err := m.total(ctx, "totalAuctions")
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return []domain.Auction{}, nil
	}

	endID := new(big.Int).Sub(total, big.NewInt(1))
	var out []interface{}
	if err := m.call(ctx, &out, "getAllValidAuctions", big.NewInt(0), endID); err != nil {
		return nil, err
	}
	raws := *abi.ConvertType(out[0], new([]auctionTuple)).(*[]auctionTuple)

	auctions := make([]domain.Auction, 0, len(raws))
	for _, raw := range raws {
		auctions = append(auctions, m.toAuction(raw))
	}
	return auctions, nil
}

func (m *Marketplace) GetListing(ctx context.Context, id *big.Int) (*domain.DirectListing, error) {
	var out []interface{}
	if err := m.call(ctx, &out, "getListing", id); err != nil {
		return nil, err
	}
	raw := *abi.ConvertType(out[0], new(listingTuple)).(*listingTuple)
	if raw.Status == statusUnset {
		return nil, fmt.Errorf("listing %s: %w", id, domain.ErrNotFound)
	}
	listing := m.toListing(raw)
	return &listing, nil
}

func (m *Marketplace) GetAllValidListings(ctx context.Context) ([]domain.DirectListing, error) {
	total, err := m.total(ctx, "totalListings")
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return []domain.DirectListing{}, nil
	}

	endID := new(big.Int).Sub(total, big.NewInt(1))
	var out []interface{}
	if err := m.call(ctx, &out, "getAllValidListings", big.NewInt(0), endID); err != nil {
		return nil, err
	}
	raws := *abi.ConvertType(out[0], new([]listingTuple)).(*[]listingTuple)

	listings := make([]domain.DirectListing, 0, len(raws))
	for _, raw := range raws {
		listings = append(listings, m.toListing(raw))
	}
	return listings, nil
}

func (m *Marketplace) total(ctx context.Context, method string) (*big.Int, error) {
	var out []interface{}
	if err := m.call(ctx, &out, method); err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (m *Marketplace) NativeBalance(ctx context.Context, address string) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	bal, err := m.client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return nil, fmt.Errorf("balance read: %w: %v", domain.ErrUpstream, err)
	}
	return bal, nil
}

// TokenImageURL tries the image() and imageUrl() views some token
// contracts expose. Returns "" when the token has neither.
func (m *Marketplace) TokenImageURL(ctx context.Context, tokenAddress string) (string, error) {
	contract := bind.NewBoundContract(common.HexToAddress(tokenAddress), m.imageABI, m.client, m.client, m.client)

	for _, method := range []string{"image", "imageUrl"} {
		callCtx, cancel := context.WithTimeout(ctx, m.timeout)
		var out []interface{}
		err := contract.Call(&bind.CallOpts{Context: callCtx}, &out, method)
		cancel()
		if err != nil {
			// Most tokens implement neither view; keep trying.
			continue
		}
		if url := *abi.ConvertType(out[0], new(string)).(*string); url != "" {
			return url, nil
		}
	}
	return "", nil
}

func (m *Marketplace) Close() {
	m.client.Close()
}
