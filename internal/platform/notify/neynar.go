/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

// Package notify delivers mini-app push notifications through Neynar.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/monalista/market-core/internal/core/domain"
	"github.com/monalista/market-core/internal/core/ports"
)

type NeynarClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *slog.Logger
}

var _ ports.Notifier = (*NeynarClient)(nil)

func NewNeynarClient(baseURL, apiKey string, timeout time.Duration, log *slog.Logger) *NeynarClient {
	return &NeynarClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		log:        log,
	}
}

func (c *NeynarClient) LookupFidByAddress(ctx context.Context, address string) (int64, error) {
	endpoint := c.baseURL + "/v2/farcaster/user/custody-address?custody_address=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("neynar lookup: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("user %s: %w", address, domain.ErrNotFound)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("neynar response: %w: %v", domain.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Error("neynar api error", "status", resp.StatusCode, "body", string(body))
		return 0, &domain.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		User struct {
			Fid int64 `json:"fid"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("neynar response decode: %w: %v", domain.ErrUpstream, err)
	}
	if payload.User.Fid == 0 {
		return 0, fmt.Errorf("user %s: %w", address, domain.ErrNotFound)
	}
	return payload.User.Fid, nil
}

func (c *NeynarClient) SendNotification(ctx context.Context, fid int64, title, body, targetURL string) error {
	payload, err := json.Marshal(map[string]any{
		"target_fids": []int64{fid},
		"notification": map[string]string{
			"title":      title,
			"body":       body,
			"target_url": targetURL,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/farcaster/frame/notifications", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("neynar publish: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Error("neynar publish error", "status", resp.StatusCode, "body", string(respBody))
		return &domain.UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}
