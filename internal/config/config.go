// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-json"

	"github.com/amaumene/gotmdb/internal/constants"
	"github.com/amaumene/gotmdb/pkg/logger"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.json"
)

// Config holds the application configuration.
// Values are resolved as defaults, then the optional JSON file, then
// environment variables.
type Config struct {
	// TMDB access
	APIKey    string        `env:"TMDB_API_KEY"`
	BaseURL   string        `env:"TMDB_BASE_URL"`
	Language  string        `env:"TMDB_LANGUAGE"`
	Timeout   time.Duration `env:"TMDB_TIMEOUT"`
	RateLimit int           `env:"TMDB_RATE_LIMIT"`
	RateBurst int           `env:"TMDB_RATE_BURST"`

	// Proxy server
	Port      string        `env:"PORT"`
	CacheSize int           `env:"CACHE_SIZE"`
	CacheTTL  time.Duration `env:"CACHE_TTL"`

	LogLevel   string `env:"LOG_LEVEL"`
	ConfigFile string `env:"CONFIG_FILE"`
}

// fileConfig mirrors Config in the JSON file. Durations are strings such as
// "10s" and absent keys leave the current value alone.
type fileConfig struct {
	APIKey    *string `json:"TMDB_API_KEY"`
	BaseURL   *string `json:"TMDB_BASE_URL"`
	Language  *string `json:"TMDB_LANGUAGE"`
	Timeout   *string `json:"TMDB_TIMEOUT"`
	RateLimit *int    `json:"TMDB_RATE_LIMIT"`
	RateBurst *int    `json:"TMDB_RATE_BURST"`
	Port      *string `json:"PORT"`
	CacheSize *int    `json:"CACHE_SIZE"`
	CacheTTL  *string `json:"CACHE_TTL"`
	LogLevel  *string `json:"LOG_LEVEL"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		BaseURL:    constants.DefaultBaseURL,
		Timeout:    constants.TMDBTimeout,
		RateLimit:  constants.TMDBRateLimit,
		RateBurst:  constants.TMDBRateBurst,
		Port:       constants.DefaultPort,
		CacheSize:  constants.DefaultCacheSize,
		CacheTTL:   time.Duration(constants.DefaultCacheTTL) * time.Hour,
		LogLevel:   constants.DefaultLogLevel,
		ConfigFile: defaultConfigFile,
	}
}

// Load reads configuration from the process environment and the optional
// JSON file. Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom is Load with an explicit environment. A nil map means the
// process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := Default()

	lookup := os.Getenv
	if environ != nil {
		lookup = func(key string) string { return environ[key] }
	}

	configFile := defaultConfigFile
	if v := lookup("CONFIG_FILE"); v != "" {
		configFile = v
	}
	if err := cfg.loadFromFile(configFile); err != nil {
		// a missing file is fine
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays the values present in a JSON file.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var f fileConfig
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	setString(&c.APIKey, f.APIKey)
	setString(&c.BaseURL, f.BaseURL)
	setString(&c.Language, f.Language)
	setString(&c.Port, f.Port)
	setString(&c.LogLevel, f.LogLevel)
	setInt(&c.RateLimit, f.RateLimit)
	setInt(&c.RateBurst, f.RateBurst)
	setInt(&c.CacheSize, f.CacheSize)
	if err := setDuration(&c.Timeout, f.Timeout); err != nil {
		return fmt.Errorf("%s: TMDB_TIMEOUT: %w", filename, err)
	}
	if err := setDuration(&c.CacheTTL, f.CacheTTL); err != nil {
		return fmt.Errorf("%s: CACHE_TTL: %w", filename, err)
	}
	c.ConfigFile = filename
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" {
		return errors.New("TMDB_API_KEY is required")
	}
	if c.BaseURL == "" {
		return errors.New("TMDB_BASE_URL must not be empty")
	}
	if err := (tmdb.Query{Language: c.Language}).Validate(); err != nil {
		return fmt.Errorf("TMDB_LANGUAGE: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT and TMDB_RATE_BURST must be positive, got %d and %d", c.RateLimit, c.RateBurst)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}

	if c.CacheSize < 0 || c.CacheSize > constants.MaxCacheSize {
		return fmt.Errorf("CACHE_SIZE must be between 0 and %d, got %d", constants.MaxCacheSize, c.CacheSize)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}
	if !logger.IsKnownLevel(c.LogLevel) {
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// CacheEnabled reports whether the proxy should cache upstream responses.
func (c *Config) CacheEnabled() bool {
	return c.CacheSize > 0
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
