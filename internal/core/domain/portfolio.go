/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

package domain

import "encoding/json"

// NativeTokenAddress is the pseudo-address used for the chain's native
// currency in portfolio responses and image lookups.
const NativeTokenAddress = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// OwnedToken is one fungible-token position of a wallet. Balance is a
// decimal string because ERC-20 balances exceed float64 precision.
type OwnedToken struct {
	TokenAddress string `json:"tokenAddress"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name,omitempty"`
	ImgURL       string `json:"imgUrlV2,omitempty"`
	Balance      string `json:"balance"`
}

// TokenPortfolio is the fungible-token holdings of one wallet.
type TokenPortfolio struct {
	Tokens []OwnedToken `json:"tokens"`
}

// NFTPage is one page of a wallet's NFT holdings. Items keep the
// indexer's shape (already normalized to decimal-string integers).
type NFTPage struct {
	NFTs    []json.RawMessage `json:"nfts"`
	HasMore bool              `json:"hasMore"`
}

type NFTTrait struct {
	AttributeName  string `json:"attributeName"`
	AttributeValue string `json:"attributeValue"`
}

// NFTMetadata is the indexed metadata of a single NFT.
type NFTMetadata struct {
	TokenID     string     `json:"tokenId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	RarityRank  *int       `json:"rarityRank,omitempty"`
	Traits      []NFTTrait `json:"traits,omitempty"`
}

type CollectionStats struct {
	FloorPriceNative string `json:"floorPriceNative,omitempty"`
}

// Collection is the indexed metadata of an NFT collection.
type Collection struct {
	Address     string          `json:"address"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Stats       CollectionStats `json:"stats"`
}

// TokenImage is a resolved token icon. Image marshals as base64, which
// is how it is stored in the cache.
type TokenImage struct {
	Image       []byte `json:"image"`
	ContentType string `json:"contentType"`
}
