package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvDefaults(t *testing.T) {

	var cfg Config
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, "data/mionjo.db", cfg.DBPath)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "0 6 * * *", cfg.PredictionsSchedule)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("MIONJO_DB_PATH", "/tmp/test.db")
	t.Setenv("MIONJO_DB_DRIVER", "sqlite")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("MIONJO_REGISTER_URL", "https://example.org/register")

	var cfg Config
	require.NoError(t, ParseEnv(&cfg))

	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Equal(t, "https://example.org/register", cfg.RegisterURL)
}

func TestLoadWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MIONJO_HTTP_ADDR", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}
