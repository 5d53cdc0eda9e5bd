package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
)

// DefaultCommerceAPIVersion pins the storefront GraphQL API version used
// when COMMERCE_API_VERSION is unset.
const DefaultCommerceAPIVersion = "2024-07"

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                 string
	PostgresDSN          string
	HandleDBPath         string
	CommerceStoreDomain  string
	CommerceAPIVersion   string
	CommerceAccessToken  string
	TemporalAddress      string
	TemporalNamespace    string
	TemporalDisabled     bool
	CatalogCacheTTL      time.Duration
	PurgeIntervalMinutes int
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                envDefault("PORT", "8080"),
		PostgresDSN:         strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		HandleDBPath:        strings.TrimSpace(os.Getenv("CART_HANDLE_DB_PATH")),
		CommerceStoreDomain: strings.TrimSpace(os.Getenv("COMMERCE_STORE_DOMAIN")),
		CommerceAPIVersion:  envDefault("COMMERCE_API_VERSION", DefaultCommerceAPIVersion),
		CommerceAccessToken: strings.TrimSpace(os.Getenv("COMMERCE_API_TOKEN")),
		TemporalAddress:     envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:   envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:    isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		CatalogCacheTTL:     time.Hour,
	}
	if raw := strings.TrimSpace(os.Getenv("CATALOG_CACHE_TTL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("CATALOG_CACHE_TTL_MINUTES must be a positive integer")
		}
		cfg.CatalogCacheTTL = time.Duration(minutes) * time.Minute
	}
	if raw := strings.TrimSpace(os.Getenv("HANDLE_PURGE_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("HANDLE_PURGE_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.PurgeIntervalMinutes = minutes
	}
	return cfg, nil
}

// CommerceConfigured reports whether the remote commerce platform can be
// dialed; without it the process serves in-memory fixtures.
func (c Config) CommerceConfigured() bool {
	return c.CommerceStoreDomain != "" && c.CommerceAccessToken != ""
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
