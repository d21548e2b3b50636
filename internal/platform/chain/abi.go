package chain

// Condensed MarketplaceV3 ABI: the english-auction and direct-listing
// read surface only. Tuple layouts match IEnglishAuctions.Auction and
// IDirectListings.Listing.
const marketplaceABI = `[
	{
		"inputs": [{"internalType": "uint256", "name": "_auctionId", "type": "uint256"}],
		"name": "getAuction",
		"outputs": [
			{
				"components": [
					{"internalType": "uint256", "name": "auctionId", "type": "uint256"},
					{"internalType": "uint256", "name": "tokenId", "type": "uint256"},
					{"internalType": "uint256", "name": "quantity", "type": "uint256"},
					{"internalType": "uint256", "name": "minimumBidAmount", "type": "uint256"},
					{"internalType": "uint256", "name": "buyoutBidAmount", "type": "uint256"},
					{"internalType": "uint64", "name": "timeBufferInSeconds", "type": "uint64"},
					{"internalType": "uint64", "name": "bidBufferBps", "type": "uint64"},
					{"internalType": "uint64", "name": "startTimestamp", "type": "uint64"},
					{"internalType": "uint64", "name": "endTimestamp", "type": "uint64"},
					{"internalType": "address", "name": "auctionCreator", "type": "address"},
					{"internalType": "address", "name": "assetContract", "type": "address"},
					{"internalType": "address", "name": "currency", "type": "address"},
					{"internalType": "uint8", "name": "tokenType", "type": "uint8"},
					{"internalType": "uint8", "name": "status", "type": "uint8"}
				],
				"internalType": "struct IEnglishAuctions.Auction",
				"name": "auction",
				"type": "tuple"
			}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "_startId", "type": "uint256"},
			{"internalType": "uint256", "name": "_endId", "type": "uint256"}
		],
		"name": "getAllValidAuctions",
		"outputs": [
			{
				"components": [
					{"internalType": "uint256", "name": "auctionId", "type": "uint256"},
					{"internalType": "uint256", "name": "tokenId", "type": "uint256"},
					{"internalType": "uint256", "name": "quantity", "type": "uint256"},
					{"internalType": "uint256", "name": "minimumBidAmount", "type": "uint256"},
					{"internalType": "uint256", "name": "buyoutBidAmount", "type": "uint256"},
					{"internalType": "uint64", "name": "timeBufferInSeconds", "type": "uint64"},
					{"internalType": "uint64", "name": "bidBufferBps", "type": "uint64"},
					{"internalType": "uint64", "name": "startTimestamp", "type": "uint64"},
					{"internalType": "uint64", "name": "endTimestamp", "type": "uint64"},
					{"internalType": "address", "name": "auctionCreator", "type": "address"},
					{"internalType": "address", "name": "assetContract", "type": "address"},
					{"internalType": "address", "name": "currency", "type": "address"},
					{"internalType": "uint8", "name": "tokenType", "type": "uint8"},
					{"internalType": "uint8", "name": "status", "type": "uint8"}
				],
				"internalType": "struct IEnglishAuctions.Auction[]",
				"name": "auctions",
				"type": "tuple[]"
			}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "totalAuctions",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "uint256", "name": "_auctionId", "type": "uint256"}],
		"name": "getWinningBid",
		"outputs": [
			{"internalType": "address", "name": "bidder", "type": "address"},
			{"internalType": "address", "name": "currency", "type": "address"},
			{"internalType": "uint256", "name": "bidAmount", "type": "uint256"}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "uint256", "name": "_listingId", "type": "uint256"}],
		"name": "getListing",
		"outputs": [
			{
				"components": [
					{"internalType": "uint256", "name": "listingId", "type": "uint256"},
					{"internalType": "uint256", "name": "tokenId", "type": "uint256"},
					{"internalType": "uint256", "name": "quantity", "type": "uint256"},
					{"internalType": "uint256", "name": "pricePerToken", "type": "uint256"},
					{"internalType": "uint128", "name": "startTimestamp", "type": "uint128"},
					{"internalType": "uint128", "name": "endTimestamp", "type": "uint128"},
					{"internalType": "address", "name": "listingCreator", "type": "address"},
					{"internalType": "address", "name": "assetContract", "type": "address"},
					{"internalType": "address", "name": "currency", "type": "address"},
					{"internalType": "uint8", "name": "tokenType", "type": "uint8"},
					{"internalType": "uint8", "name": "status", "type": "uint8"},
					{"internalType": "bool", "name": "reserved", "type": "bool"}
				],
				"internalType": "struct IDirectListings.Listing",
				"name": "listing",
				"type": "tuple"
			}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "uint256", "name": "_startId", "type": "uint256"},
			{"internalType": "uint256", "name": "_endId", "type": "uint256"}
		],
		"name": "getAllValidListings",
		"outputs": [
			{
				"components": [
					{"internalType": "uint256", "name": "listingId", "type": "uint256"},
					{"internalType": "uint256", "name": "tokenId", "type": "uint256"},
					{"internalType": "uint256", "name": "quantity", "type": "uint256"},
					{"internalType": "uint256", "name": "pricePerToken", "type": "uint256"},
					{"internalType": "uint128", "name": "startTimestamp", "type": "uint128"},
					{"internalType": "uint128", "name": "endTimestamp", "type": "uint128"},
					{"internalType": "address", "name": "listingCreator", "type": "address"},
					{"internalType": "address", "name": "assetContract", "type": "address"},
					{"internalType": "address", "name": "currency", "type": "address"},
					{"internalType": "uint8", "name": "tokenType", "type": "uint8"},
					{"internalType": "uint8", "name": "status", "type": "uint8"},
					{"internalType": "bool", "name": "reserved", "type": "bool"}
				],
				"internalType": "struct IDirectListings.Listing[]",
				"name": "listings",
				"type": "tuple[]"
			}
		],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "totalListings",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	}
]`

// Minimal read surface of tokens that expose their own icon on-chain.
const tokenImageABI = `[
	{
		"inputs": [],
		"name": "image",
		"outputs": [{"internalType": "string", "name": "", "type": "string"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [],
		"name": "imageUrl",
		"outputs": [{"internalType": "string", "name": "", "type": "string"}],
		"stateMutability": "view",
		"type": "function"
	}
]`
