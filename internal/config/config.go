package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	ChannelAccessToken string
	ChannelSecret      string
	Port               string

	// DatabaseURL enables the interaction log when set
	DatabaseURL string

	// StateTTL bounds how long an abandoned flow stays pending
	StateTTL time.Duration

	// HTTPTimeout applies to all outbound collaborator calls
	HTTPTimeout time.Duration

	NewsURL    string
	QuoteURL   string
	HistoryURL string
}

// Default collaborator endpoints (overridable for tests and staging)
const (
	defaultNewsURL    = "https://tw.stock.yahoo.com/news"
	defaultQuoteURL   = "https://mis.twse.com.tw/stock/api/getStockInfo.jsp"
	defaultHistoryURL = "https://www.twse.com.tw/rwd/zh/afterTrading/STOCK_DAY_AVG"
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		ChannelAccessToken: os.Getenv("channel_access_token"),
		ChannelSecret:      os.Getenv("channel_secret"),
		Port:               getEnv("PORT", "5000"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		NewsURL:            getEnv("NEWS_URL", defaultNewsURL),
		QuoteURL:           getEnv("QUOTE_URL", defaultQuoteURL),
		HistoryURL:         getEnv("HISTORY_URL", defaultHistoryURL),
	}

	// Validate required fields
	if cfg.ChannelAccessToken == "" {
		return nil, fmt.Errorf("channel_access_token is required")
	}
	if cfg.ChannelSecret == "" {
		return nil, fmt.Errorf("channel_secret is required")
	}

	var err error
	cfg.StateTTL, err = getDurationEnv("STATE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout, err = getDurationEnv("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
