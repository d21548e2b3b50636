/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

package domain

// ListingStatus is the lifecycle state of an auction or direct listing.
// The contract stores UNSET/CREATED/COMPLETED/CANCELLED; ACTIVE and
// EXPIRED are derived from the start/end timestamps at read time.
type ListingStatus string

const (
	StatusUnset     ListingStatus = "UNSET"
	StatusCreated   ListingStatus = "CREATED"
	StatusActive    ListingStatus = "ACTIVE"
	StatusCompleted ListingStatus = "COMPLETED"
	StatusCancelled ListingStatus = "CANCELLED"
	StatusExpired   ListingStatus = "EXPIRED"
)

// Terminal reports whether the resource can no longer change on-chain.
// Terminal resources are cached without expiration.
func (s ListingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// TokenType is the asset standard of the listed token.
type TokenType string

const (
	TokenTypeERC721  TokenType = "ERC721"
	TokenTypeERC1155 TokenType = "ERC1155"
)

// Auction is an English auction as read from the marketplace contract.
type Auction struct {
	ID                      BigInt        `json:"id"`
	CreatorAddress          string        `json:"creatorAddress"`
	AssetContractAddress    string        `json:"assetContractAddress"`
	TokenID                 BigInt        `json:"tokenId"`
	Quantity                BigInt        `json:"quantity"`
	CurrencyContractAddress string        `json:"currencyContractAddress"`
	MinimumBidAmount        BigInt        `json:"minimumBidAmount"`
	BuyoutBidAmount         BigInt        `json:"buyoutBidAmount"`
	TimeBufferInSeconds     uint64        `json:"timeBufferInSeconds"`
	BidBufferBps            uint64        `json:"bidBufferBps"`
	StartTimeInSeconds      uint64        `json:"startTimeInSeconds"`
	EndTimeInSeconds        uint64        `json:"endTimeInSeconds"`
	TokenType               TokenType     `json:"tokenType"`
	Status                  ListingStatus `json:"status"`
}

// Bid is the current winning bid of an auction.
type Bid struct {
	AuctionID               BigInt `json:"auctionId"`
	BidderAddress           string `json:"bidderAddress"`
	CurrencyContractAddress string `json:"currencyContractAddress"`
	BidAmount               BigInt `json:"bidAmount"`
}

// AuctionDetail is a single auction with its winning bid folded in.
type AuctionDetail struct {
	Auction
	WinningBid *Bid `json:"winningBid,omitempty"`
}

// DirectListing is a fixed-price listing as read from the marketplace contract.
type DirectListing struct {
	ID                      BigInt        `json:"id"`
	CreatorAddress          string        `json:"creatorAddress"`
	AssetContractAddress    string        `json:"assetContractAddress"`
	TokenID                 BigInt        `json:"tokenId"`
	Quantity                BigInt        `json:"quantity"`
	CurrencyContractAddress string        `json:"currencyContractAddress"`
	PricePerToken           BigInt        `json:"pricePerToken"`
	StartTimeInSeconds      uint64        `json:"startTimeInSeconds"`
	EndTimeInSeconds        uint64        `json:"endTimeInSeconds"`
	IsReservedListing       bool          `json:"isReservedListing"`
	TokenType               TokenType     `json:"tokenType"`
	Status                  ListingStatus `json:"status"`
}
