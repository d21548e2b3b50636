package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/monalista/market-core/internal/core/domain"
)

// InsightClient reads owned-NFT pages from the Insight REST API.
// Insight paginates by limit only; offset windows are carved out by the
// caller.
type InsightClient struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	chainID    int
	log        *slog.Logger
}

func NewInsightClient(baseURL, clientID string, chainID int, timeout time.Duration, log *slog.Logger) *InsightClient {
	return &InsightClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		clientID:   clientID,
		chainID:    chainID,
		log:        log,
	}
}

func (c *InsightClient) OwnedNFTs(ctx context.Context, address string, limit int) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("owner_address", address)
	q.Set("chain_id", strconv.Itoa(c.chainID))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("metadata", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/nfts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	req.Header.Set("x-client-id", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("insight request: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("insight response: %w: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Error("insight api error", "status", resp.StatusCode, "body", string(body))
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("insight response decode: %w: %v", domain.ErrUpstream, err)
	}
	return envelope.Data, nil
}
