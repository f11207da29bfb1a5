package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("N3XFIN_DATA_DIR", filepath.Join(dir, "data"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.APIBaseURL != "" {
		t.Errorf("APIBaseURL should default empty, got %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Errorf("APITimeout = %v, want 15s", cfg.APITimeout)
	}
	if cfg.ReportCron != "0 6 1 * *" {
		t.Errorf("ReportCron = %q", cfg.ReportCron)
	}

	if _, err := os.Stat(cfg.SnapshotsDir()); err != nil {
		t.Errorf("snapshots dir should be created: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("N3XFIN_DATA_DIR", dir)
	t.Setenv("N3XFIN_LISTEN_ADDR", ":9999")
	t.Setenv("N3XFIN_API_BASE_URL", "https://api.example.com")
	t.Setenv("N3XFIN_API_TIMEOUT", "5s")
	t.Setenv("N3XFIN_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("APITimeout = %v", cfg.APITimeout)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("N3XFIN_DATA_DIR", dir)
	t.Setenv("N3XFIN_API_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Error("bad timeout should fail loading")
	}

	t.Setenv("N3XFIN_API_TIMEOUT", "5s")
	t.Setenv("N3XFIN_DEBUG", "perhaps")
	if _, err := Load(); err == nil {
		t.Error("bad debug flag should fail loading")
	}
}
