package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	require.Equal(t, "localhost:6379", cfg.Store.Addr)

	require.Equal(t, "gpt-4o-mini", cfg.Provider.Model)
	require.Equal(t, 10*time.Second, cfg.Provider.Timeout)
	require.InDelta(t, 0.9, cfg.Provider.GenTemperature, 1e-9)
	require.InDelta(t, 0.3, cfg.Provider.AnalysisTemperature, 1e-9)

	require.Equal(t, 3, cfg.RateLimit.Quota)
	require.Equal(t, 24*time.Hour, cfg.RateLimit.Window)
	require.Equal(t, "https://adlens.dev/pricing", cfg.RateLimit.UpgradeURL)

	require.Equal(t, 24*time.Hour, cfg.Cache.GenerationTTL)
	require.Equal(t, 24*time.Hour, cfg.Cache.InspectionTTL)

	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADLENS_SERVER_PORT", "9191")
	t.Setenv("ADLENS_PROVIDER_API_KEY", "sk-test-123")
	t.Setenv("ADLENS_RATE_LIMIT_QUOTA", "5")
	t.Setenv("ADLENS_RATE_LIMIT_WINDOW", "1h")
	t.Setenv("ADLENS_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, 9191, cfg.Server.Port)
	require.Equal(t, "sk-test-123", cfg.Provider.APIKey)
	require.Equal(t, 5, cfg.RateLimit.Quota)
	require.Equal(t, time.Hour, cfg.RateLimit.Window)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOnlyKeys(t *testing.T) {
	// These keys have no default; env values must still land.
	t.Setenv("ADLENS_PROVIDER_API_KEY", "sk-env-only")
	t.Setenv("ADLENS_PROVIDER_BASE_URL", "https://llm.internal/v1")
	t.Setenv("ADLENS_STORE_URL", "redis://:secret@redis.internal:6380/2")
	t.Setenv("ADLENS_STORE_PASSWORD", "hunter2")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "sk-env-only", cfg.Provider.APIKey)
	require.Equal(t, "https://llm.internal/v1", cfg.Provider.BaseURL)
	require.Equal(t, "redis://:secret@redis.internal:6380/2", cfg.Store.URL)
	require.Equal(t, "hunter2", cfg.Store.Password)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adlens.yaml")
	content := []byte(`
server:
  host: 127.0.0.1
  port: 9000
provider:
  model: gpt-4o
  timeout: 5s
cache:
  generation_ttl: 12h
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "gpt-4o", cfg.Provider.Model)
	require.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	require.Equal(t, 12*time.Hour, cfg.Cache.GenerationTTL)

	// Untouched keys keep their defaults.
	require.Equal(t, 3, cfg.RateLimit.Quota)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o600))

	t.Setenv("ADLENS_SERVER_PORT", "9500")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9500, cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsBadQuota(t *testing.T) {
	t.Setenv("ADLENS_RATE_LIMIT_QUOTA", "0")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate_limit.quota")
}

func TestLoadRejectsBadWindow(t *testing.T) {
	t.Setenv("ADLENS_RATE_LIMIT_WINDOW", "-1h")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "rate_limit.window")
}
