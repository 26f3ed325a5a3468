package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "")
	t.Setenv("PORTAL_TIMEOUT", "")
	t.Setenv("PORTAL_LOG_LEVEL", "")
	t.Setenv("PORTAL_PREFIX", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Config{BaseURL: "http://localhost:5000", Prefix: "/api", LogLevel: "info"}, cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "https://portal.example.edu/")
	t.Setenv("PORTAL_PREFIX", "/v1")
	t.Setenv("PORTAL_TIMEOUT", "15s")
	t.Setenv("PORTAL_LOG_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://portal.example.edu", cfg.BaseURL)
	require.Equal(t, "/v1", cfg.Prefix)
	require.Equal(t, 15*time.Second, cfg.Timeout)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "")
	t.Setenv("PORTAL_LOG_LEVEL", "")
	// godotenv does not override variables that are already set.
	require.NoError(t, os.Unsetenv("PORTAL_BASE_URL"))
	t.Cleanup(func() { _ = os.Unsetenv("PORTAL_BASE_URL") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORTAL_BASE_URL=http://10.0.0.5:5000\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.5:5000", cfg.BaseURL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := Config{BaseURL: "http://localhost:5000", LogLevel: "info"}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.BaseURL = "localhost"
	require.Error(t, bad.Validate())

	bad = ok
	bad.Timeout = -time.Second
	require.Error(t, bad.Validate())

	bad = ok
	bad.LogLevel = "verbose"
	require.Error(t, bad.Validate())
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "not a url")
	t.Setenv("PORTAL_LOG_LEVEL", "")

	cfg, err := Read("")
	require.NoError(t, err)
	require.Equal(t, "not a url", cfg.BaseURL)

	_, err = Load("")
	require.Error(t, err)
}
