package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// SiteDir is the dashboard content root: the directory holding
	// Home.md and the pages/ directory.
	SiteDir string

	// Dataset cache
	CacheEnabled bool

	// Load limits
	MaxTableBytes int64

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port:    envOr("PORT", "8501"),
		SiteDir: envOr("SITE_DIR", "."),

		CacheEnabled: envBool("CACHE_ENABLED", true),

		MaxTableBytes: envInt64("MAX_TABLE_BYTES", 10<<20), // 10MB

		ReadTimeout:  envDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: envDuration("WRITE_TIMEOUT", 30*time.Second),
	}

	if cfg.MaxTableBytes <= 0 {
		cfg.MaxTableBytes = 10 << 20
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}

	return cfg
}

// Validate checks that the site directory exists and looks like a dashboard
// root (it must contain a pages/ directory).
func (c Config) Validate() error {
	info, err := os.Stat(c.SiteDir)
	if err != nil {
		return fmt.Errorf("site directory %q: %w", c.SiteDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("site directory %q is not a directory", c.SiteDir)
	}
	pages := filepath.Join(c.SiteDir, "pages")
	info, err = os.Stat(pages)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("site directory %q has no pages/ directory", c.SiteDir)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
