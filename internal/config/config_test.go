package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Indicators.WindowSize)
	assert.Equal(t, 10.0, cfg.Indicators.PinkThreshold)
	assert.True(t, cfg.Indicators.StrictMode)
	assert.Equal(t, "0 */5 * * * *", cfg.Schedule.SnapshotCron)
	assert.Equal(t, "data/round_sentinel.db", cfg.Database.SQLitePath)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
indicators:
  window_size: 30
  pink_threshold: 8.5
  strict_mode: false
telegram:
  bot_token: token
  chat_id: "42"
metrics_addr: ":9100"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Indicators.WindowSize)
	assert.Equal(t, 8.5, cfg.Indicators.PinkThreshold)
	assert.False(t, cfg.Indicators.StrictMode)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MSI_WINDOW", "50")
	t.Setenv("PINK_THRESHOLD", "12.5")
	t.Setenv("STRICT_MODE", "false")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")

	cfg, err := Load(writeConfig(t, "indicators:\n  window_size: 30\n"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Indicators.WindowSize)
	assert.Equal(t, 12.5, cfg.Indicators.PinkThreshold)
	assert.False(t, cfg.Indicators.StrictMode)
	assert.Equal(t, "/tmp/x.db", cfg.Database.SQLitePath)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("MSI_WINDOW", "wide")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, "indicators:\n  window_size: 200\n"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg, err = Load(writeConfig(t, "telegram:\n  bot_token: only-token\n"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
