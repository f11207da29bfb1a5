// Package config loads server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string

	// APIBaseURL is the hosted analytics API. Empty selects the
	// built-in sample data source.
	APIBaseURL string

	// APITimeout bounds every upstream call.
	APITimeout time.Duration

	// DataDir holds report snapshots.
	DataDir string

	// TemplatesDir and StaticDir locate the web assets. Missing
	// templates put the server in JSON-only mode.
	TemplatesDir string
	StaticDir    string

	// JWTSecret verifies Bearer tokens from the managed auth service.
	JWTSecret string

	// ReportCron schedules automatic monthly report generation.
	ReportCron string

	// Debug enables verbose logging and disables JSON log format.
	Debug bool
}

// Default returns the development configuration.
func Default() *Config {
	return &Config{
		ListenAddr:   ":8080",
		APITimeout:   15 * time.Second,
		DataDir:      "data",
		TemplatesDir: "web/templates",
		StaticDir:    "web/static",
		ReportCron:   "0 6 1 * *",
	}
}

// Load builds the configuration from defaults, an optional .env file,
// then environment variables, and makes sure the data directory exists.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env always wins because godotenv
	// does not overwrite existing variables.
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("N3XFIN_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("N3XFIN_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("N3XFIN_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing N3XFIN_API_TIMEOUT: %w", err)
		}
		cfg.APITimeout = d
	}
	if v := os.Getenv("N3XFIN_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("N3XFIN_TEMPLATES_DIR"); v != "" {
		cfg.TemplatesDir = v
	}
	if v := os.Getenv("N3XFIN_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
	if v := os.Getenv("N3XFIN_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("N3XFIN_REPORT_CRON"); v != "" {
		cfg.ReportCron = v
	}
	if v := os.Getenv("N3XFIN_DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing N3XFIN_DEBUG: %w", err)
		}
		cfg.Debug = b
	}

	if err := cfg.ensureDirectories(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SnapshotsDir is where generated report snapshots live.
func (c *Config) SnapshotsDir() string {
	return filepath.Join(c.DataDir, "reports")
}

func (c *Config) ensureDirectories() error {
	for _, dir := range []string{c.DataDir, c.SnapshotsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
