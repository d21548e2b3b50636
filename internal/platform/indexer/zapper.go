/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

// Package indexer queries the third-party indexing APIs.
package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/monalista/market-core/internal/core/domain"
)

const tokenBalancesQuery = `
query TokenBalances($addresses: [Address!]!, $first: Int, $chainIds: [Int!]) {
  portfolioV2(addresses: $addresses, chainIds: $chainIds) {
    tokenBalances {
      byToken(first: $first) {
        edges { node { symbol tokenAddress balance imgUrlV2 name } }
      }
    }
  }
}`

const nftTokenQuery = `
query NftToken($collectionAddress: Address!, $chainId: Int!, $tokenId: String!) {
  nftTokenV2(collectionAddress: $collectionAddress, chainId: $chainId, tokenId: $tokenId) {
    tokenId
    name
    description
    rarityRank
    traits { attributeName attributeValue }
  }
}`

const collectionQuery = `
query CollectionMetadata($collections: [NftCollectionInput!]!) {
  nftCollections(collections: $collections) {
    address
    name
    description
    imageUrl
    stats {
      floorPriceNative
    }
  }
}`

// ZapperClient talks to the Zapper GraphQL API.
type ZapperClient struct {
	httpClient *http.Client
	url        string
	apiKey     string
	chainID    int
	log        *slog.Logger
}

func NewZapperClient(url, apiKey string, chainID int, timeout time.Duration, log *slog.Logger) *ZapperClient {
	return &ZapperClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		apiKey:     apiKey,
		chainID:    chainID,
		log:        log,
	}
}

type graphQLError struct {
	Message string `json:"message"`
}

// query posts a GraphQL document and decodes the data envelope into out.
// The error list is checked independently of HTTP status: a 200 with
// errors is still an upstream failure.
func (c *ZapperClient) query(ctx context.Context, document string, variables map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{"query": document, "variables": variables})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-zapper-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("zapper request: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("zapper response: %w: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Error("zapper api error", "status", resp.StatusCode, "body", string(body))
		return &domain.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("zapper response decode: %w: %v", domain.ErrUpstream, err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		c.log.Error("zapper graphql errors", "errors", messages)
		return &domain.UpstreamError{Status: resp.StatusCode, Body: strings.Join(messages, "; ")}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("zapper data decode: %w: %v", domain.ErrUpstream, err)
	}
	return nil
}

func (c *ZapperClient) TokenBalances(ctx context.Context, address string, first int) ([]domain.OwnedToken, error) {
	variables := map[string]any{
		"addresses": []string{address},
		"first":     first,
		"chainIds":  []int{c.chainID},
	}

	var data struct {
		PortfolioV2 struct {
			TokenBalances struct {
				ByToken struct {
					Edges []struct {
						Node struct {
							Symbol       string      `json:"symbol"`
							TokenAddress string      `json:"tokenAddress"`
							Balance      json.Number `json:"balance"`
							ImgURLV2     string      `json:"imgUrlV2"`
							Name         string      `json:"name"`
						} `json:"node"`
					} `json:"edges"`
				} `json:"byToken"`
			} `json:"tokenBalances"`
		} `json:"portfolioV2"`
	}
	if err := c.query(ctx, tokenBalancesQuery, variables, &data); err != nil {
		return nil, err
	}

	edges := data.PortfolioV2.TokenBalances.ByToken.Edges
	tokens := make([]domain.OwnedToken, 0, len(edges))
	for _, e := range edges {
		tokens = append(tokens, domain.OwnedToken{
			TokenAddress: e.Node.TokenAddress,
			Symbol:       e.Node.Symbol,
			Name:         e.Node.Name,
			ImgURL:       e.Node.ImgURLV2,
			Balance:      e.Node.Balance.String(),
		})
	}
	return tokens, nil
}

func (c *ZapperClient) NFTToken(ctx context.Context, chainID int, collectionAddress, tokenID string) (*domain.NFTMetadata, error) {
	variables := map[string]any{
		"collectionAddress": collectionAddress,
		"chainId":           chainID,
		"tokenId":           tokenID,
	}

	var data struct {
		NFTTokenV2 *domain.NFTMetadata `json:"nftTokenV2"`
	}
	if err := c.query(ctx, nftTokenQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.NFTTokenV2 == nil {
		return nil, fmt.Errorf("nft %s/%s: %w", collectionAddress, tokenID, domain.ErrNotFound)
	}
	return data.NFTTokenV2, nil
}

func (c *ZapperClient) Collection(ctx context.Context, address string) (*domain.Collection, error) {
	variables := map[string]any{
		"collections": []map[string]string{{"address": address}},
	}

	var data struct {
		NFTCollections []struct {
			Address     string `json:"address"`
			Name        string `json:"name"`
			Description string `json:"description"`
			ImageURL    string `json:"imageUrl"`
			Stats       struct {
				FloorPriceNative json.Number `json:"floorPriceNative"`
			} `json:"stats"`
		} `json:"nftCollections"`
	}
	if err := c.query(ctx, collectionQuery, variables, &data); err != nil {
		return nil, err
	}
	if len(data.NFTCollections) == 0 {
		return nil, nil
	}

	raw := data.NFTCollections[0]
	return &domain.Collection{
		Address:     raw.Address,
		Name:        raw.Name,
		Description: raw.Description,
		ImageURL:    raw.ImageURL,
		Stats: domain.CollectionStats{
			FloorPriceNative: raw.Stats.FloorPriceNative.String(),
		},
	}, nil
}
