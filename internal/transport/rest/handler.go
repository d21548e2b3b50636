/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/monalista/market-core/internal/core/domain"
	"github.com/monalista/market-core/internal/core/ports"
	"github.com/monalista/market-core/internal/transport/rest/middleware"
)

type MarketHandler struct {
	service ports.MarketService
	log     *slog.Logger
}

func NewMarketHandler(s ports.MarketService, log *slog.Logger) *MarketHandler {
	return &MarketHandler{service: s, log: log}
}

// RegisterRoutes wires up the endpoints to the router
func (h *MarketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/auctions", h.ListAuctions)
	r.Get("/auctions/{id}", h.GetAuction)
	r.Get("/listings", h.ListListings)
	r.Get("/listings/{id}", h.GetListing)
	r.Get("/tokens", h.GetTokens)
	r.Get("/nfts", h.GetNFTs)
	r.Get("/nft", h.GetNFT)
	r.Get("/collections", h.GetCollection)
	r.Get("/token-image", h.GetTokenImage)
	r.Get("/theme", h.GetTheme)
	r.Post("/theme", h.SetTheme)
	r.Post("/cache/invalidate", h.InvalidateCache)
	r.Post("/notifications/outbid", h.NotifyOutbid)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *MarketHandler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps domain errors to statuses. Upstream and unexpected
// failures are logged with detail but reach the caller as a generic
// message only.
func (h *MarketHandler) respondError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		h.respondJSON(w, http.StatusNotFound, errorResponse{Error: resource + " not found"})
	default:
		reqID, _ := middleware.GetRequestID(r.Context())
		h.log.Error("request failed", "path", r.URL.Path, "request_id", reqID, "error", err)
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to fetch " + resource})
	}
}

// ListAuctions handles GET /auctions
func (h *MarketHandler) ListAuctions(w http.ResponseWriter, r *http.Request) {
	auctions, err := h.service.Auctions(r.Context())
	if err != nil {
		h.respondError(w, r, err, "auctions")
		return
	}
	h.respondJSON(w, http.StatusOK, auctions)
}

// GetAuction handles GET /auctions/{id}
func (h *MarketHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	auction, err := h.service.Auction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "auction")
		return
	}
	h.respondJSON(w, http.StatusOK, auction)
}

// ListListings handles GET /listings
func (h *MarketHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.Listings(r.Context())
	if err != nil {
		h.respondError(w, r, err, "listings")
		return
	}
	h.respondJSON(w, http.StatusOK, listings)
}

// GetListing handles GET /listings/{id}
func (h *MarketHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.service.Listing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err, "listing")
		return
	}
	h.respondJSON(w, http.StatusOK, listing)
}

// GetTokens handles GET /tokens?address=0x...
func (h *MarketHandler) GetTokens(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "address query param is required"})
		return
	}

	portfolio, err := h.service.Tokens(r.Context(), address)
	if err != nil {
		h.respondError(w, r, err, "tokens")
		return
	}
	h.respondJSON(w, http.StatusOK, portfolio)
}

// GetNFTs handles GET /nfts?address=0x...&page=1
func (h *MarketHandler) GetNFTs(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "address query param is required"})
		return
	}
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}

	nfts, err := h.service.NFTs(r.Context(), address, page)
	if err != nil {
		h.respondError(w, r, err, "nfts")
		return
	}
	h.respondJSON(w, http.StatusOK, nfts)
}

// GetNFT handles GET /nft?collectionAddress=0x...&tokenId=1&chainId=8453
func (h *MarketHandler) GetNFT(w http.ResponseWriter, r *http.Request) {
	collectionAddress := r.URL.Query().Get("collectionAddress")
	tokenID := r.URL.Query().Get("tokenId")
	chainID, _ := strconv.Atoi(r.URL.Query().Get("chainId"))
	if collectionAddress == "" || tokenID == "" || chainID <= 0 {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "collectionAddress, tokenId and chainId are required"})
		return
	}

	nft, err := h.service.NFT(r.Context(), chainID, collectionAddress, tokenID)
	if err != nil {
		h.respondError(w, r, err, "NFT")
		return
	}
	// Minted metadata never changes; let intermediaries keep it.
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	h.respondJSON(w, http.StatusOK, nft)
}

// GetCollection handles GET /collections?address=0x...
func (h *MarketHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "address query param is required"})
		return
	}

	collection, err := h.service.Collection(r.Context(), address)
	if err != nil {
		h.respondError(w, r, err, "collection")
		return
	}
	h.respondJSON(w, http.StatusOK, collection)
}

// GetTokenImage handles GET /token-image?chainName=base&tokenAddress=0x...
func (h *MarketHandler) GetTokenImage(w http.ResponseWriter, r *http.Request) {
	chainName := r.URL.Query().Get("chainName")
	tokenAddress := r.URL.Query().Get("tokenAddress")
	if chainName == "" || tokenAddress == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "chainName and tokenAddress are required"})
		return
	}

	img, err := h.service.TokenImage(r.Context(), chainName, tokenAddress)
	if err != nil {
		h.respondError(w, r, err, "token image")
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	_, _ = w.Write(img.Image)
}

type themeResponse struct {
	Theme string `json:"theme"`
}

// GetTheme handles GET /theme?fid=123
func (h *MarketHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.service.Theme(r.Context(), r.URL.Query().Get("fid"))
	if err != nil {
		h.respondError(w, r, err, "theme")
		return
	}
	h.respondJSON(w, http.StatusOK, themeResponse{Theme: theme})
}

// SetTheme handles POST /theme
func (h *MarketHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Fid   json.Number `json:"fid"`
		Theme string      `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Fid.String() == "" || req.Theme == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing fid or theme"})
		return
	}

	if err := h.service.SetTheme(r.Context(), req.Fid.String(), req.Theme); err != nil {
		h.respondError(w, r, err, "theme")
		return
	}
	h.respondJSON(w, http.StatusOK, themeResponse{Theme: req.Theme})
}

type ackResponse struct {
	Success bool `json:"success"`
}

// InvalidateCache handles POST /cache/invalidate. The client calls it
// after a confirmed transaction; it always acknowledges, and a body
// without a key list is a no-op rather than an error.
func (h *MarketHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Keys json.RawMessage `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	var keys []string
	if err := json.Unmarshal(req.Keys, &keys); err == nil {
		h.service.Invalidate(r.Context(), keys)
	}
	h.respondJSON(w, http.StatusOK, ackResponse{Success: true})
}

// NotifyOutbid handles POST /notifications/outbid
func (h *MarketHandler) NotifyOutbid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PreviousBidder string `json:"previousBidder"`
		AuctionID      string `json:"auctionId"`
		NFTName        string `json:"nftName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.PreviousBidder == "" || req.AuctionID == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing_params"})
		return
	}

	err := h.service.NotifyOutbid(r.Context(), req.PreviousBidder, req.AuctionID, req.NFTName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondJSON(w, http.StatusNotFound, errorResponse{Error: "user_not_found"})
			return
		}
		reqID, _ := middleware.GetRequestID(r.Context())
		h.log.Error("failed to send outbid notification", "request_id", reqID, "error", err)
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
		return
	}
	h.respondJSON(w, http.StatusOK, ackResponse{Success: true})
}
