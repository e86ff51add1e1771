package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("MAX_CONCURRENT", "8")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.TelegramToken)
	assert.Equal(t, "key", cfg.GeminiAPIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MaxConcurrent)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 180*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.GeminiBaseURL)
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("GEMINI_API_KEY", "key")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")

	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("GEMINI_API_KEY", "")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadClampsInvalidValues(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("MAX_CONCURRENT", "0")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.MaxConcurrent)
	assert.Equal(t, 240*time.Second, cfg.RequestTimeout)
}
