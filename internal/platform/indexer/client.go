package indexer

import (
	"context"
	"encoding/json"

	"github.com/monalista/market-core/internal/core/ports"
)

// Client composes the two indexing backends behind one port: Zapper for
// GraphQL metadata/balances, Insight for owned-NFT pages.
type Client struct {
	*ZapperClient
	insight *InsightClient
}

var _ ports.IndexerClient = (*Client)(nil)

func NewClient(zapper *ZapperClient, insight *InsightClient) *Client {
	return &Client{ZapperClient: zapper, insight: insight}
}

func (c *Client) OwnedNFTs(ctx context.Context, address string, limit int) ([]json.RawMessage, error) {
	return c.insight.OwnedNFTs(ctx, address, limit)
}
