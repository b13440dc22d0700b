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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[backend]
base_url = "https://market.example.com"
timeout = 5

[session]
token_file = "/tmp/test-token"

[logs]
level = "debug"

[metrics]
enabled = true
addr = ":9100"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://market.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 5, cfg.Backend.Timeout)
	assert.Equal(t, "/tmp/test-token", cfg.Session.TokenFile)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	// Незаполненные поля получают дефолты
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "rentmarket-client", cfg.Metrics.ServiceName)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[backend]
base_url = "https://market.example.com"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Backend.Timeout)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.NotEmpty(t, cfg.Session.TokenFile)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	path := writeConfig(t, `
[logs]
level = "info"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
