package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string
	Port        string
	LogLevel    string

	// Cache (Redis L2, optional ristretto L1)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheL1Bytes  int64

	// Chain
	RPCURL             string
	ChainID            int
	MarketplaceAddress string
	NativeSymbol       string
	NativeName         string
	NativeIconURL      string

	// Indexing APIs
	ZapperURL       string
	ZapperAPIKey    string
	InsightURL      string
	InsightClientID string
	CoinGeckoURL    string

	// Notifications
	NeynarURL    string
	NeynarAPIKey string

	// Public base URL for deep links in notifications
	PublicBaseURL string

	// Applied to every outbound call (chain, indexers, images, notify)
	UpstreamTimeout time.Duration
}

// Load returns the application configuration from environment variables
func Load() *Config {
	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheL1Bytes:  int64(getEnvInt("CACHE_L1_BYTES", 0)),

		RPCURL:             getEnv("RPC_URL", "https://mainnet.base.org"),
		ChainID:            getEnvInt("CHAIN_ID", 8453),
		MarketplaceAddress: getEnv("MARKETPLACE_ADDRESS", "0xC0D13387bb111DE1BEa4596F898b8C3207efA2b1"),
		NativeSymbol:       getEnv("NATIVE_SYMBOL", "ETH"),
		NativeName:         getEnv("NATIVE_NAME", "Ether"),
		NativeIconURL:      getEnv("NATIVE_ICON_URL", ""),

		ZapperURL:       getEnv("ZAPPER_URL", "https://public.zapper.xyz/graphql"),
		ZapperAPIKey:    getEnv("ZAPPER_API_KEY", ""),
		InsightURL:      getEnv("INSIGHT_URL", "https://insight.thirdweb.com"),
		InsightClientID: getEnv("INSIGHT_CLIENT_ID", ""),
		CoinGeckoURL:    getEnv("COINGECKO_URL", "https://api.coingecko.com"),

		NeynarURL:    getEnv("NEYNAR_URL", "https://api.neynar.com"),
		NeynarAPIKey: getEnv("NEYNAR_API_KEY", ""),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),

		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}
