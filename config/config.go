package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads environment variables from a .env file in the working
// directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Config holds all externally-injected settings. Credentials live here
// rather than in code.
type Config struct {
	Port             string
	EbayClientID     string
	EbayClientSecret string
	EbayPricePolicy  string
	CraigslistSite   string
	// CraigslistStrategy selects "dom" (headless Chrome) or "feed" (RSS).
	CraigslistStrategy string
}

// FromEnv builds the configuration from environment variables, applying
// defaults for the optional ones.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getenv("PORT", "3000"),
		EbayClientID:       os.Getenv("EBAY_CLIENT_ID"),
		EbayClientSecret:   os.Getenv("EBAY_CLIENT_SECRET"),
		EbayPricePolicy:    getenv("EBAY_PRICE_POLICY", "range"),
		CraigslistSite:     getenv("CRAIGSLIST_SITE", "sfbay"),
		CraigslistStrategy: getenv("CRAIGSLIST_STRATEGY", "feed"),
	}

	if cfg.EbayClientID == "" {
		return nil, fmt.Errorf("EBAY_CLIENT_ID is not set")
	}
	if cfg.EbayClientSecret == "" {
		return nil, fmt.Errorf("EBAY_CLIENT_SECRET is not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
