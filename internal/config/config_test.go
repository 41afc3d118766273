package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finbot/internal/config"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ALPHAVANTAGE_API_KEY", "demo")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "123:abc", cfg.Telegram.Token)
	require.Equal(t, 30, cfg.Telegram.PollTimeoutSec)
	require.Equal(t, "demo", cfg.AlphaVantage.APIKey)
	require.Equal(t, "https://www.alphavantage.co", cfg.AlphaVantage.BaseURL)
	require.Equal(t, 10, cfg.AlphaVantage.RequestTimeoutSec)
	require.NotEmpty(t, cfg.Database.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("ALPHAVANTAGE_BASE_URL", "http://localhost:9999")
	t.Setenv("REQUEST_TIMEOUT_SEC", "5")
	t.Setenv("DATABASE_URL", "postgres://x:y@db:5432/finbot")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:9999", cfg.AlphaVantage.BaseURL)
	require.Equal(t, 5, cfg.AlphaVantage.RequestTimeoutSec)
	require.Equal(t, "postgres://x:y@db:5432/finbot", cfg.Database.URL)
}

func TestLoad_MissingBotToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("ALPHAVANTAGE_API_KEY", "demo")

	// Missing credentials must refuse to start the process.
	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("ALPHAVANTAGE_API_KEY", "")

	_, err := config.Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ALPHAVANTAGE_API_KEY")
}

func TestLoad_BadTimeoutFallsBack(t *testing.T) {
	setCredentials(t)
	t.Setenv("REQUEST_TIMEOUT_SEC", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 10, cfg.AlphaVantage.RequestTimeoutSec)
}
