/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

// Package images resolves token icons from, in order: the well-known
// native-token icon, CoinGecko's contract lookup, and the image()/
// imageUrl() views some token contracts expose on-chain.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/monalista/market-core/internal/core/domain"
	"github.com/monalista/market-core/internal/core/ports"
)

// ChainImageReader is the on-chain fallback source.
type ChainImageReader interface {
	TokenImageURL(ctx context.Context, tokenAddress string) (string, error)
}

type Resolver struct {
	httpClient    *http.Client
	coingeckoURL  string
	nativeIconURL string
	chain         ChainImageReader
	log           *slog.Logger
}

var _ ports.ImageSource = (*Resolver)(nil)

func NewResolver(coingeckoURL, nativeIconURL string, chain ChainImageReader, timeout time.Duration, log *slog.Logger) *Resolver {
	return &Resolver{
		httpClient:    &http.Client{Timeout: timeout},
		coingeckoURL:  coingeckoURL,
		nativeIconURL: nativeIconURL,
		chain:         chain,
		log:           log,
	}
}

func (r *Resolver) Resolve(ctx context.Context, chainName, tokenAddress string) (*domain.TokenImage, error) {
	if strings.EqualFold(tokenAddress, domain.NativeTokenAddress) || strings.EqualFold(tokenAddress, "native") {
		if r.nativeIconURL != "" {
			if img, err := r.fetchImage(ctx, r.nativeIconURL); err == nil {
				return img, nil
			}
		}
		return nil, fmt.Errorf("native token icon: %w", domain.ErrNotFound)
	}

	if img := r.fromCoinGecko(ctx, chainName, tokenAddress); img != nil {
		return img, nil
	}

	// Some tokens publish their own icon on-chain.
	if url, err := r.chain.TokenImageURL(ctx, tokenAddress); err == nil && url != "" {
		if img, err := r.fetchImage(ctx, url); err == nil {
			return img, nil
		}
	}

	return nil, fmt.Errorf("token image %s: %w", tokenAddress, domain.ErrNotFound)
}

func (r *Resolver) fromCoinGecko(ctx context.Context, chainName, tokenAddress string) *domain.TokenImage {
	url := fmt.Sprintf("%s/api/v3/coins/%s/contract/%s", r.coingeckoURL, strings.ToLower(chainName), tokenAddress)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Warn("coingecko lookup failed", "token", tokenAddress, "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var payload struct {
		Image struct {
			Large string `json:"large"`
		} `json:"image"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Image.Large == "" {
		return nil
	}

	img, err := r.fetchImage(ctx, payload.Image.Large)
	if err != nil {
		r.log.Warn("coingecko image fetch failed", "url", payload.Image.Large, "error", err)
		return nil
	}
	return img
}

func (r *Resolver) fetchImage(ctx context.Context, url string) (*domain.TokenImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Body: "image fetch failed"}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return &domain.TokenImage{Image: data, ContentType: contentType}, nil
}
