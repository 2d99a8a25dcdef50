package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds runtime parameters for the service. Values come from Defaults,
// then an optional file, then CO2D_* environment variables, then flags.
type Config struct {
	Addr            string      `json:"addr" yaml:"addr" toml:"addr" env:"ADDR"`
	Store           StoreConfig `json:"store" yaml:"store" toml:"store" envPrefix:"STORE_"`
	Watch           bool        `json:"watch" yaml:"watch" toml:"watch" env:"WATCH"`
	CacheSize       int         `json:"cache_size" yaml:"cache_size" toml:"cache_size" env:"CACHE_SIZE"`
	MaxBodyBytes    int64       `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"MAX_BODY_BYTES"`
	LogLevel        string      `json:"log_level" yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`
	LogFormat       string      `json:"log_format" yaml:"log_format" toml:"log_format" env:"LOG_FORMAT"`
	LogFile         string      `json:"log_file" yaml:"log_file" toml:"log_file" env:"LOG_FILE"`
	CORS            CORSConfig  `json:"cors" yaml:"cors" toml:"cors" envPrefix:"CORS_"`
	ShutdownTimeout Duration    `json:"shutdown_timeout" yaml:"shutdown_timeout" toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// StoreConfig selects the artifact store.
type StoreConfig struct {
	// Kind is "file" or "bolt".
	Kind string `json:"kind" yaml:"kind" toml:"kind" env:"KIND"`
	// Path is the store directory (file) or database file (bolt).
	Path string `json:"path" yaml:"path" toml:"path" env:"PATH"`
	// Keep is how many versions a file store retains.
	Keep int `json:"keep" yaml:"keep" toml:"keep" env:"KEEP"`
}

// CORSConfig configures the optional CORS middleware.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins" env:"ORIGINS"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods" env:"METHODS"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers" env:"HEADERS"`
}

// Duration is a time.Duration written as text ("10s", "1m30s") in every
// config format.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		Addr:         ":8080",
		Store:        StoreConfig{Kind: "file", Path: "~/.local/share/co2d/artifacts", Keep: 3},
		CacheSize:    1024,
		MaxBodyBytes: 1 << 20,
		LogLevel:     "info",
		LogFormat:    "console",
		CORS: CORSConfig{
			Origins: []string{"*"},
			Methods: []string{"GET", "POST", "OPTIONS"},
			Headers: []string{"*"},
		},
		ShutdownTimeout: Duration{5 * time.Second},
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	switch strings.ToLower(c.Store.Kind) {
	case "file", "bolt":
	default:
		errs = append(errs, fmt.Errorf("store.kind must be file or bolt, got %q", c.Store.Kind))
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		errs = append(errs, errors.New("store.path is required"))
	}
	if c.Store.Keep < 0 {
		errs = append(errs, fmt.Errorf("store.keep must be >= 0, got %d", c.Store.Keep))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size must be >= 0, got %d", c.CacheSize))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_body_bytes must be > 0, got %d", c.MaxBodyBytes))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be console or json, got %q", c.LogFormat))
	}
	if c.ShutdownTimeout.Duration < 0 {
		errs = append(errs, errors.New("shutdown_timeout must not be negative"))
	}
	return errors.Join(errs...)
}
