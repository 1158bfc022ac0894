package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skipWithoutXDG skips tests that redirect the user config dir through
// XDG_CONFIG_HOME, which only os.UserConfigDir on Linux honors.
func skipWithoutXDG(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("requires XDG_CONFIG_HOME support")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3, cfg.RetryCeiling)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.NotEmpty(t, cfg.LogDir)
	assert.Contains(t, cfg.LogDir, "fix-compile")
}

func TestTimeout(t *testing.T) {
	cfg := &Config{TimeoutSeconds: 90}
	assert.Equal(t, 90*time.Second, cfg.Timeout())
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	skipWithoutXDG(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(false)
	require.NoError(t, err)
	assert.Equal(t, Default().RetryCeiling, cfg.RetryCeiling)
}

func TestLoadOverlaysConfigFile(t *testing.T) {
	skipWithoutXDG(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "fix-compile")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("provider: openai\nretry_ceiling: 5\n"), 0600))

	cfg, err := Load(false)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, 5, cfg.RetryCeiling)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 60, cfg.TimeoutSeconds)
}

func TestGetAndSetRoundTrip(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("provider", "openai"))
	require.NoError(t, cfg.Set("model", "gpt-4o-mini"))
	require.NoError(t, cfg.Set("retry_ceiling", "5"))
	require.NoError(t, cfg.Set("timeout_seconds", "90"))
	require.NoError(t, cfg.Set("log_dir", "/tmp/logs"))

	assert.Equal(t, 5, cfg.RetryCeiling)
	assert.Equal(t, 90, cfg.TimeoutSeconds)

	for key, want := range map[string]string{
		"provider":        "openai",
		"model":           "gpt-4o-mini",
		"retry_ceiling":   "5",
		"timeout_seconds": "90",
		"log_dir":         "/tmp/logs",
	} {
		got, err := cfg.Get(key)
		require.NoError(t, err, "key %s", key)
		assert.Equal(t, want, got, "key %s", key)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	cfg := Default()

	err := cfg.Set("colour_scheme", "dark")
	require.Error(t, err)
	// The error lists the valid keys so the user can self-correct.
	assert.Contains(t, err.Error(), "provider")

	_, err = cfg.Get("colour_scheme")
	assert.Error(t, err)
}

func TestSetRejectsBadIntegers(t *testing.T) {
	cfg := Default()

	assert.Error(t, cfg.Set("retry_ceiling", "many"))
	assert.Error(t, cfg.Set("retry_ceiling", "-1"))
	assert.Error(t, cfg.Set("timeout_seconds", "0"))
	// Rejected values leave the config untouched.
	assert.Equal(t, Default().RetryCeiling, cfg.RetryCeiling)
	assert.Equal(t, Default().TimeoutSeconds, cfg.TimeoutSeconds)
}

func TestResetRestoresDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Set("retry_ceiling", "9"))
	require.NoError(t, cfg.Set("provider", "openai"))

	require.NoError(t, cfg.Reset("retry_ceiling"))
	require.NoError(t, cfg.Reset("provider"))

	assert.Equal(t, Default().RetryCeiling, cfg.RetryCeiling)
	assert.Empty(t, cfg.Provider)
	assert.Error(t, cfg.Reset("colour_scheme"))
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	skipWithoutXDG(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	require.NoError(t, cfg.Set("provider", "openai"))
	require.NoError(t, cfg.Set("retry_ceiling", "7"))

	path, err := cfg.Save()
	require.NoError(t, err)

	expected, err := FilePath()
	require.NoError(t, err)
	assert.Equal(t, expected, path)

	loaded, err := Load(false)
	require.NoError(t, err)
	assert.Equal(t, "openai", loaded.Provider)
	assert.Equal(t, 7, loaded.RetryCeiling)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	skipWithoutXDG(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "fix-compile")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("provider: [unterminated"), 0600))

	_, err := Load(false)
	assert.Error(t, err)
}
