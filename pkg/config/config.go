// Package config loads packsize configuration from a TOML file.
//
// All settings have working defaults; a config file is optional. The file is
// conventionally located at ~/.config/packsize/config.toml.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all tunable settings for an analysis run.
type Config struct {
	// Concurrency bounds the per-package resolution worker pool.
	Concurrency int `toml:"concurrency"`
	// RequestTimeout is the per-request timeout at the registry transport.
	RequestTimeout Duration `toml:"request_timeout"`
	// AuditTimeout bounds a single security-audit command invocation.
	AuditTimeout Duration `toml:"audit_timeout"`

	Cache    CacheConfig         `toml:"cache"`
	Registry RegistryConfig      `toml:"registry"`
	Store    StoreConfig         `toml:"store"`
	Paid     map[string][]string `toml:"paid"`
}

// CacheConfig selects and configures the metadata cache backend.
type CacheConfig struct {
	// Backend is one of "memory", "redis", or "none".
	Backend string        `toml:"backend"`
	TTL     Duration      `toml:"ttl"`
	Redis   RedisSettings `toml:"redis"`
}

// RedisSettings configures the optional shared Redis cache.
type RedisSettings struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RegistryConfig overrides registry endpoints, mainly for testing against
// mirrors or fixtures.
type RegistryConfig struct {
	PyPIURL string `toml:"pypi_url"`
	NpmURL  string `toml:"npm_url"`
}

// StoreConfig configures the optional report archive.
type StoreConfig struct {
	// Backend is one of "none", "memory", or "mongo".
	Backend string        `toml:"backend"`
	Mongo   MongoSettings `toml:"mongo"`
}

// MongoSettings configures the MongoDB report archive.
type MongoSettings struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration is a time.Duration that unmarshals from TOML strings like "5s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the setting as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Concurrency:    8,
		RequestTimeout: Duration(5 * time.Second),
		AuditTimeout:   Duration(30 * time.Second),
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     Duration(24 * time.Hour),
			Redis:   RedisSettings{Addr: "localhost:6379"},
		},
		Store: StoreConfig{
			Backend: "none",
			Mongo: MongoSettings{
				URI:        "mongodb://localhost:27017",
				Database:   "packsize",
				Collection: "reports",
			},
		},
		Paid: map[string][]string{
			"python": {"private-package", "enterprise-pkg"},
			"node":   {"private-module", "enterprise-pkg"},
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "packsize", "config.toml"), nil
}

// Load reads the config file at path, applying it over the defaults.
// A nonexistent path returns the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = Default().Concurrency
	}
	return cfg, nil
}
