// ABOUTME: Configuration loader for the nkwabiz console
// ABOUTME: Loads settings from an optional .env file and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const appDirName = "nkwabiz"

type Config struct {
	// Backend
	APIURL      string        `env:"NKWABIZ_API_URL" envDefault:"http://localhost:5000"`
	HTTPTimeout time.Duration `env:"NKWABIZ_HTTP_TIMEOUT" envDefault:"30s"`
	SOCKS5Proxy string        `env:"NKWABIZ_SOCKS5_PROXY"`

	// Local state
	ConfigDir string `env:"NKWABIZ_CONFIG_DIR"`

	// Bulk SMS limits
	SMSMaxRecipients int           `env:"NKWABIZ_SMS_MAX_RECIPIENTS" envDefault:"80"`
	SMSUnitPrice     float64       `env:"NKWABIZ_SMS_UNIT_PRICE" envDefault:"0.03"`
	CategoryCacheTTL time.Duration `env:"NKWABIZ_CATEGORY_CACHE_TTL" envDefault:"30s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads .env (when present) and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = ensureScheme(strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"))
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = DefaultConfigDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("NKWABIZ_API_URL is required")
	}
	if c.SMSMaxRecipients < 1 || c.SMSMaxRecipients > 10000 {
		return fmt.Errorf("NKWABIZ_SMS_MAX_RECIPIENTS must be between 1 and 10000, got %d", c.SMSMaxRecipients)
	}
	if c.SMSUnitPrice < 0 {
		return fmt.Errorf("NKWABIZ_SMS_UNIT_PRICE must not be negative, got %v", c.SMSUnitPrice)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("NKWABIZ_HTTP_TIMEOUT must not be negative")
	}
	return nil
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDirName)
	}
	return filepath.Join(home, ".config", appDirName)
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
