package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Server.URL = "http://localhost:9999"
	cfg.Interview.Questions = 3
	cfg.Export.Dir = "/tmp/exports"

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Server.URL != "http://localhost:9999" {
		t.Errorf("Server.URL: got %q, want %q", loaded.Server.URL, "http://localhost:9999")
	}
	if loaded.Interview.Questions != 3 {
		t.Errorf("Interview.Questions: got %d, want 3", loaded.Interview.Questions)
	}
	if loaded.Export.Dir != "/tmp/exports" {
		t.Errorf("Export.Dir: got %q, want %q", loaded.Export.Dir, "/tmp/exports")
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.URL != "http://127.0.0.1:5001" {
		t.Errorf("default Server.URL: got %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSeconds != 30 {
		t.Errorf("default Server.TimeoutSeconds: got %d, want 30", cfg.Server.TimeoutSeconds)
	}
	if cfg.Interview.Mode != "technical" {
		t.Errorf("default Interview.Mode: got %q, want technical", cfg.Interview.Mode)
	}
	if cfg.Interview.PacingMs != 1500 {
		t.Errorf("default Interview.PacingMs: got %d, want 1500", cfg.Interview.PacingMs)
	}
	if !cfg.History.Enabled {
		t.Error("default History.Enabled should be true")
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestBackwardCompatibility(t *testing.T) {
	// A config written before the history section existed should still parse.
	tmpDir := t.TempDir()
	oldConfig := `version: 1
server:
  url: http://127.0.0.1:5001
  timeout_seconds: 30
interview:
  role: Software Engineer
  mode: technical
  questions: 5
`
	configPath := filepath.Join(tmpDir, ".querybox")
	if err := os.MkdirAll(configPath, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configPath, "config.yaml"), []byte(oldConfig), 0644); err != nil {
		t.Fatalf("failed to write old config: %v", err)
	}

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed on old config: %v", err)
	}
	if cfg.History.Enabled {
		t.Error("missing history section should default to zero value")
	}
	if cfg.Interview.Questions != 5 {
		t.Errorf("Interview.Questions: got %d, want 5", cfg.Interview.Questions)
	}
}
