package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/veland/scrubmon/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"scrubmon"}, args...)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "scrubmon.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	setArgs(t)
	configPath := writeConfig(t, `
interval = 5
retention = "4h"
endpoint = "http://sensors.local/api/readings"
archive = true
archive_db = "/path/to/readings.db"
log_level = "debug"
`)
	t.Setenv("SCRUBMON_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Interval, "Expected Interval 5")
	assert.Equal(t, "4h", cfg.Retention, "Expected Retention 4h")
	assert.Equal(t, "http://sensors.local/api/readings", cfg.Endpoint)
	assert.True(t, cfg.Archive, "Expected Archive true")
	assert.Equal(t, "/path/to/readings.db", cfg.ArchiveDB)
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
}

func TestLoadDefaults(t *testing.T) {
	setArgs(t)
	// Ensure no config file is used
	t.Setenv("SCRUBMON_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, 10, cfg.Interval, "Expected default Interval 10")
	assert.Equal(t, "1h", cfg.Retention, "Expected default Retention 1h")
	assert.False(t, cfg.Archive, "Expected default Archive false")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "Expected default LogLevel info")
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	setArgs(t)
	configPath := writeConfig(t, `
This is not a valid TOML file
`)
	t.Setenv("SCRUBMON_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestInvalidRetention(t *testing.T) {
	setArgs(t)
	configPath := writeConfig(t, `
retention = "45m"
`)
	t.Setenv("SCRUBMON_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "45m")
}

func TestInvalidLogLevel(t *testing.T) {
	setArgs(t)
	configPath := writeConfig(t, `
log_level = "chatty"
`)
	t.Setenv("SCRUBMON_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid log level")
}

func TestInvalidInterval(t *testing.T) {
	setArgs(t)
	configPath := writeConfig(t, `
interval = 0
`)
	t.Setenv("SCRUBMON_CONFIG", configPath)

	_, err := config.Load()
	require.Error(t, err)
}

func TestFlagsOverrideFile(t *testing.T) {
	configPath := writeConfig(t, `
retention = "4h"
log_level = "warn"
`)
	t.Setenv("SCRUBMON_CONFIG", configPath)
	setArgs(t, "--retention", "7d", "--log-level", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "7d", cfg.Retention, "Expected Retention to be set by flag")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel to be set by flag")
}

func TestRetentionDuration(t *testing.T) {
	setArgs(t)
	t.Setenv("SCRUBMON_CONFIG", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, float64(3600), cfg.RetentionDuration().Seconds())
}
