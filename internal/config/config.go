// Package config manages application configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Escape modes for interpolated page text.
const (
	EscapeStrict = "strict"
	EscapeCompat = "compat"
)

// Config holds all application configuration.
type Config struct {
	// YouTube Data API settings
	APIKey         string        `yaml:"api_key"`
	ChannelID      string        `yaml:"channel_id"`
	PageSize       int64         `yaml:"page_size"`
	APIEndpoint    string        `yaml:"api_endpoint"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Output settings
	SiteDir  string `yaml:"site_dir"`
	PagesDir string `yaml:"pages_dir"`
	BaseURL  string `yaml:"base_url"`
	Escape   string `yaml:"escape"`
	Minify   bool   `yaml:"minify"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Preview server
	ServeAddr string `yaml:"serve_addr"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		PageSize:       50,
		RequestTimeout: 30 * time.Second,
		SiteDir:        ".",
		PagesDir:       "videos",
		BaseURL:        "https://yourdomain.com/videos/",
		Escape:         EscapeStrict,
		LogLevel:       "info",
		LogFormat:      "console",
		ServeAddr:      "127.0.0.1:8080",
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(configPaths()); err != nil {
		// Config file is optional
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPaths lists candidate config files, most specific first.
func configPaths() []string {
	if p := os.Getenv("YTSITE_CONFIG"); p != "" {
		return []string{p}
	}
	return []string{
		"ytsite.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "ytsite", "ytsite.yaml"),
	}
}

// loadFromFile decodes the first existing file in paths over c.
func (c *Config) loadFromFile(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTSITE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTSITE_CHANNEL_ID"); v != "" {
		c.ChannelID = v
	}
	if v := os.Getenv("YTSITE_PAGE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.PageSize = n
		}
	}
	if v := os.Getenv("YTSITE_API_ENDPOINT"); v != "" {
		c.APIEndpoint = v
	}
	if v := os.Getenv("YTSITE_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("YTSITE_SITE_DIR"); v != "" {
		c.SiteDir = v
	}
	if v := os.Getenv("YTSITE_PAGES_DIR"); v != "" {
		c.PagesDir = v
	}
	if v := os.Getenv("YTSITE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("YTSITE_ESCAPE"); v != "" {
		c.Escape = v
	}
	if v := os.Getenv("YTSITE_MINIFY"); v != "" {
		c.Minify = v == "true" || v == "1"
	}
	if v := os.Getenv("YTSITE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("YTSITE_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("YTSITE_SERVE_ADDR"); v != "" {
		c.ServeAddr = v
	}
}

// Validate checks configuration validity.
// Credentials are checked separately by ValidateAPI since serve does not need them.
func (c *Config) Validate() error {
	if c.PageSize < 1 || c.PageSize > 50 {
		return fmt.Errorf("page_size must be between 1 and 50")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.SiteDir == "" {
		return fmt.Errorf("site_dir must not be empty")
	}
	if c.PagesDir == "" || filepath.IsAbs(c.PagesDir) || strings.HasPrefix(filepath.Clean(c.PagesDir), "..") {
		return fmt.Errorf("pages_dir must be a relative path inside site_dir")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL")
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		return fmt.Errorf("base_url must end with /")
	}
	switch c.Escape {
	case EscapeStrict, EscapeCompat:
	default:
		return fmt.Errorf("escape must be %q or %q", EscapeStrict, EscapeCompat)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format must be json or console")
	}
	return nil
}

// ValidateAPI checks the settings needed to talk to the YouTube Data API.
func (c *Config) ValidateAPI() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if c.ChannelID == "" {
		return fmt.Errorf("channel_id is required")
	}
	return nil
}
