package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigLoad_Missing(t *testing.T) {
	cm := NewConfigManagerWithDir(t.TempDir())

	cfg, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.ConfirmEnabled() || !cfg.ValidateEnabled() {
		t.Error("defaults should enable confirm and validate")
	}
	if cfg.CacheRoot() != DefaultCacheRoot() {
		t.Errorf("CacheRoot() = %q, want default", cfg.CacheRoot())
	}
}

func TestConfigLoad_JSONC(t *testing.T) {
	dir := t.TempDir()
	content := `{
  // Preferred agent when none is detected.
  "defaultAgent": "opencode",
  "ignorePatterns": ["node_modules", "vendor"],
  "confirm": false,
  "offline": true,
  "cacheDir": "/var/cache/skillet",  // trailing comma next
}`
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewConfigManagerWithDir(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DefaultAgent != "opencode" {
		t.Errorf("DefaultAgent = %q", cfg.DefaultAgent)
	}
	if len(cfg.IgnorePatterns) != 2 {
		t.Errorf("IgnorePatterns = %v", cfg.IgnorePatterns)
	}
	if cfg.ConfirmEnabled() {
		t.Error("confirm: false not honored")
	}
	if cfg.ValidateEnabled() != true {
		t.Error("unset validate should default to enabled")
	}
	if !cfg.Offline {
		t.Error("offline not honored")
	}
	if cfg.CacheRoot() != "/var/cache/skillet" {
		t.Errorf("CacheRoot() = %q", cfg.CacheRoot())
	}
}

func TestConfigLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte("{nonsense"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfigManagerWithDir(dir).Load(); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestConfigSaveLoad(t *testing.T) {
	cm := NewConfigManagerWithDir(t.TempDir())

	no := false
	saved := &Config{
		DefaultAgent:   "goose",
		IgnorePatterns: []string{"dist"},
		Validate:       &no,
	}
	if err := cm.Save(saved); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	cfg, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DefaultAgent != "goose" {
		t.Errorf("DefaultAgent = %q", cfg.DefaultAgent)
	}
	if cfg.ValidateEnabled() {
		t.Error("validate: false lost in round trip")
	}
}
