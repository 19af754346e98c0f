package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"chalk/internal/platform/config"
)

func TestNewRequiresVault(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected error for empty vault path")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	cfg, err := config.Load(vault, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reveal.Interval != 120*time.Millisecond {
		t.Fatalf("unexpected reveal interval: %s", cfg.Reveal.Interval)
	}
	if cfg.Reveal.ContinueKey != "space" {
		t.Fatalf("unexpected continue key: %q", cfg.Reveal.ContinueKey)
	}
	if cfg.DBPath != filepath.Join(vault, ".chalk", "chalk.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.Tools.GraphingURL != config.DefaultGraphingURL {
		t.Fatalf("unexpected graphing url: %s", cfg.Tools.GraphingURL)
	}
}

func TestLoadReadsVaultFile(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	if err := os.MkdirAll(filepath.Join(vault, ".chalk"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	raw := "reveal:\n  interval: 40ms\n  continue_key: enter\nassistant:\n  plugin: tutor\n"
	if err := os.WriteFile(filepath.Join(vault, ".chalk", "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(vault, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Reveal.Interval != 40*time.Millisecond {
		t.Fatalf("unexpected interval: %s", cfg.Reveal.Interval)
	}
	if cfg.Reveal.ContinueKey != "enter" {
		t.Fatalf("unexpected continue key: %q", cfg.Reveal.ContinueKey)
	}
	if cfg.Assistant.Plugin != "tutor" {
		t.Fatalf("unexpected assistant plugin: %q", cfg.Assistant.Plugin)
	}
	if cfg.Assistant.MinInterval != config.DefaultAssistantInterval {
		t.Fatalf("expected default min interval, got %s", cfg.Assistant.MinInterval)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	if _, err := config.Load(vault, filepath.Join(vault, "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
