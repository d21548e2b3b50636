package service

import (
	"time"

	"github.com/monalista/market-core/internal/core/domain"
)

// Expiration policy per resource. A zero TTL means "cache indefinitely".
const (
	// VolatileTTL is the window for anything that changes on-chain:
	// open auction/listing state and wallet contents.
	VolatileTTL = 60 * time.Second

	// CollectionTTL covers collection metadata, which changes rarely
	// but is not immutable (floor price, description edits).
	CollectionTTL = time.Hour

	// PageSize is the fixed page size for paginated portfolio reads.
	PageSize = 50
)

// listingTTL decides the cache window for a lifecycle-carrying resource.
// Terminal states are immutable past facts and cache forever.
func listingTTL(status domain.ListingStatus) time.Duration {
	if status.Terminal() {
		return 0
	}
	return VolatileTTL
}
