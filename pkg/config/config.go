// Package config carries the process-wide settings (log directory, retry
// ceiling, provider selection) as an explicit value threaded into the
// session, never as ambient globals.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "fix-compile"

// Config holds everything a session needs from the environment.
type Config struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	RetryCeiling   int    `yaml:"retry_ceiling"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogDir         string `yaml:"log_dir"`
}

// Default returns the built-in configuration. The log directory lives
// under the user cache dir so parallel projects share one log root.
func Default() *Config {
	logDir := filepath.Join(os.TempDir(), appName, "logs")
	if cacheDir, err := os.UserCacheDir(); err == nil {
		logDir = filepath.Join(cacheDir, appName, "logs")
	}
	return &Config{
		RetryCeiling:   3,
		TimeoutSeconds: 60,
		LogDir:         logDir,
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// user config file when present. devMode additionally loads a .env file
// from the working directory before anything reads the environment.
func Load(devMode bool) (*Config, error) {
	if devMode {
		// Missing .env is fine in dev mode; only a parse failure matters.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := Default()

	path, err := FilePath()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout returns the reasoning-service timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Save writes the configuration to the user config file and returns its
// path. The config directory is created when missing.
func (c *Config) Save() (string, error) {
	path, err := FilePath()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}

// Keys lists the configuration keys manageable through the config
// command, in display order.
func Keys() []string {
	return []string{"provider", "model", "retry_ceiling", "timeout_seconds", "log_dir"}
}

// Get renders the value of key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "provider":
		return c.Provider, nil
	case "model":
		return c.Model, nil
	case "retry_ceiling":
		return strconv.Itoa(c.RetryCeiling), nil
	case "timeout_seconds":
		return strconv.Itoa(c.TimeoutSeconds), nil
	case "log_dir":
		return c.LogDir, nil
	}
	return "", unknownKeyError(key)
}

// Set parses value and assigns it to key. Integer keys reject values
// that do not parse, so a bad 'config set' cannot poison later loads.
func (c *Config) Set(key, value string) error {
	switch key {
	case "provider":
		c.Provider = value
	case "model":
		c.Model = value
	case "retry_ceiling":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("retry_ceiling must be a non-negative integer, got %q", value)
		}
		c.RetryCeiling = n
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive integer, got %q", value)
		}
		c.TimeoutSeconds = n
	case "log_dir":
		c.LogDir = value
	default:
		return unknownKeyError(key)
	}
	return nil
}

// Reset restores key to its built-in default value.
func (c *Config) Reset(key string) error {
	value, err := Default().Get(key)
	if err != nil {
		return err
	}
	return c.Set(key, value)
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown configuration key %q (valid: %s)", key, strings.Join(Keys(), ", "))
}

// FilePath returns the location of the user config file.
func FilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}
