package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestLoad_MissingAccessToken(t *testing.T) {
	t.Setenv("channel_access_token", "")
	t.Setenv("channel_secret", "secret")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "channel_access_token")
}

func TestLoad_MissingChannelSecret(t *testing.T) {
	t.Setenv("channel_access_token", "token")
	t.Setenv("channel_secret", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "channel_secret")
}

func TestLoad_WithDefaults(t *testing.T) {
	t.Setenv("channel_access_token", "token")
	t.Setenv("channel_secret", "secret")
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STATE_TTL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("NEWS_URL", "")
	t.Setenv("QUOTE_URL", "")
	t.Setenv("HISTORY_URL", "")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "token", cfg.ChannelAccessToken)
	assert.Equal(t, "secret", cfg.ChannelSecret)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 10*time.Minute, cfg.StateTTL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, defaultNewsURL, cfg.NewsURL)
	assert.Equal(t, defaultQuoteURL, cfg.QuoteURL)
	assert.Equal(t, defaultHistoryURL, cfg.HistoryURL)
}

func TestLoad_CustomDurations(t *testing.T) {
	t.Setenv("channel_access_token", "token")
	t.Setenv("channel_secret", "secret")
	t.Setenv("STATE_TTL", "30m")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.StateTTL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("channel_access_token", "token")
	t.Setenv("channel_secret", "secret")
	t.Setenv("STATE_TTL", "not-a-duration")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "STATE_TTL")
}
