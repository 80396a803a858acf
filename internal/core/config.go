package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tailscale/hujson"
)

const (
	configDirName  = ".skillet"
	configFileName = "config.jsonc"
)

// Config is the user configuration. The on-disk format is JSONC
// (comments and trailing commas allowed).
type Config struct {
	// DefaultAgent is used when no agent is requested and none detected.
	DefaultAgent string `json:"defaultAgent,omitempty"`
	// IgnorePatterns prune directories during skill discovery.
	IgnorePatterns []string `json:"ignorePatterns,omitempty"`
	// Confirm, when false, disables overwrite prompts (acts as overwrite never).
	Confirm *bool `json:"confirm,omitempty"`
	// Validate, when false, skips the validation gate.
	Validate *bool `json:"validate,omitempty"`
	// Offline forbids network access; only cached repositories work.
	Offline bool `json:"offline,omitempty"`
	// CacheDir overrides the default cache root.
	CacheDir string `json:"cacheDir,omitempty"`
}

// ConfirmEnabled reports whether overwrite prompts are enabled (default true).
func (c *Config) ConfirmEnabled() bool { return c.Confirm == nil || *c.Confirm }

// ValidateEnabled reports whether the validation gate runs (default true).
func (c *Config) ValidateEnabled() bool { return c.Validate == nil || *c.Validate }

// CacheRoot returns the configured cache root, or the default.
func (c *Config) CacheRoot() string {
	if c.CacheDir != "" {
		return expandPath(c.CacheDir)
	}
	return DefaultCacheRoot()
}

// ConfigManager handles reading and writing the configuration file.
type ConfigManager struct {
	configDir string
	mu        sync.RWMutex
}

// NewConfigManager creates a ConfigManager using the default config path
// (~/.skillet/).
func NewConfigManager() (*ConfigManager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &ConfigManager{configDir: filepath.Join(home, configDirName)}, nil
}

// NewConfigManagerWithDir creates a ConfigManager using a custom config
// directory. Useful for testing.
func NewConfigManagerWithDir(dir string) *ConfigManager {
	return &ConfigManager{configDir: dir}
}

// ConfigPath returns the full path to the config file.
func (cm *ConfigManager) ConfigPath() string {
	return filepath.Join(cm.configDir, configFileName)
}

// Load reads the config from disk. Returns a zero config if the file
// doesn't exist.
func (cm *ConfigManager) Load() (*Config, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	data, err := os.ReadFile(cm.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (cm *ConfigManager) Save(cfg *Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := os.MkdirAll(cm.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write atomically: write to temp file then rename.
	tmpPath := cm.ConfigPath() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.ConfigPath()); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}
