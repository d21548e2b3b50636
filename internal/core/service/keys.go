package service

import (
	"strconv"
	"strings"
)

// Cache keys double as the invalidation addressing scheme used by the
// client after a confirmed transaction, so their formats must stay stable.
const (
	AuctionsKey = "auctions"
	ListingsKey = "listings"
)

func AuctionKey(id string) string {
	return "auction:" + id
}

func ListingKey(id string) string {
	return "listing:" + id
}

func TokensKey(address string) string {
	return "tokens:" + strings.ToLower(address)
}

func NFTsKey(address string, page int) string {
	return "nfts:" + strings.ToLower(address) + ":" + strconv.Itoa(page)
}

func NFTKey(chainID int, collectionAddress, tokenID string) string {
	return "nft:" + strconv.Itoa(chainID) + ":" + strings.ToLower(collectionAddress) + ":" + tokenID
}

func CollectionKey(address string) string {
	return "collection:" + strings.ToLower(address)
}

func TokenImageKey(chainName, tokenAddress string) string {
	return "token-image:" + strings.ToLower(chainName) + ":" + strings.ToLower(tokenAddress)
}

func ThemeKey(fid string) string {
	return "theme:" + fid
}
