/*
 * Copyright (c) 2025 Mona Lista
 *
 * This source code is licensed under the Business Source License 1.1.
 *
 * Change Date: 2028-08-30
 * Change License: AGPL-3.0
 */

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/monalista/market-core/internal/config"
	"github.com/monalista/market-core/internal/core/ports"
	"github.com/monalista/market-core/internal/core/service"
	"github.com/monalista/market-core/internal/platform/cache"
	"github.com/monalista/market-core/internal/platform/chain"
	"github.com/monalista/market-core/internal/platform/images"
	"github.com/monalista/market-core/internal/platform/indexer"
	"github.com/monalista/market-core/internal/platform/notify"
	"github.com/monalista/market-core/internal/transport/rest"
	"github.com/monalista/market-core/internal/transport/rest/middleware"
)

func main() {
	// 1. Config
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	// 2. Cache (Redis L2, optional in-process L1 in front of it)
	redisStore := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer redisStore.Close()

	var store ports.CacheStore = redisStore
	if cfg.CacheL1Bytes > 0 {
		l1, err := cache.NewMemoryStore(cfg.CacheL1Bytes)
		if err != nil {
			log.Error("failed to initialize in-memory cache", "error", err)
			os.Exit(1)
		}
		store = cache.NewTieredStore(l1, redisStore, service.VolatileTTL)
	}

	// 3. Upstreams
	ctx := context.Background()
	marketplace, err := chain.NewMarketplace(ctx, cfg.RPCURL, cfg.MarketplaceAddress, cfg.UpstreamTimeout, log)
	if err != nil {
		log.Error("failed to connect to chain RPC", "url", cfg.RPCURL, "error", err)
		os.Exit(1)
	}

	zapper := indexer.NewZapperClient(cfg.ZapperURL, cfg.ZapperAPIKey, cfg.ChainID, cfg.UpstreamTimeout, log)
	insight := indexer.NewInsightClient(cfg.InsightURL, cfg.InsightClientID, cfg.ChainID, cfg.UpstreamTimeout, log)
	indexerClient := indexer.NewClient(zapper, insight)

	imageResolver := images.NewResolver(cfg.CoinGeckoURL, cfg.NativeIconURL, marketplace, cfg.UpstreamTimeout, log)
	neynar := notify.NewNeynarClient(cfg.NeynarURL, cfg.NeynarAPIKey, cfg.UpstreamTimeout, log)

	// 4. Wiring
	marketSvc := service.NewMarketService(service.Deps{
		Cache:         store,
		Market:        marketplace,
		Indexer:       indexerClient,
		Images:        imageResolver,
		Notifier:      neynar,
		Log:           log,
		NativeSymbol:  cfg.NativeSymbol,
		NativeName:    cfg.NativeName,
		PublicBaseURL: cfg.PublicBaseURL,
	})

	handler := rest.NewMarketHandler(marketSvc, log)

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(httprate.LimitByIP(100, time.Minute))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := redisStore.Ping(req.Context()); err != nil {
			http.Error(w, "cache unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})

	// 6. Start
	addr := ":" + cfg.Port
	log.Info("market gateway starting", "addr", addr, "environment", cfg.Environment)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
