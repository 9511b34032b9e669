package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	DefaultCacheTTLSeconds = 300
	DefaultCacheMaxEntries = 1000
)

type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Cache    CacheConfig    `yaml:"cache"`
	Audit    AuditConfig    `yaml:"audit"`
	Admin    AdminConfig    `yaml:"admin"`
}

// ResolverConfig holds configuration for the identity resolver.
type ResolverConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`    // e.g., "databricks", "oidc", "static"
	Config map[string]any `yaml:",inline"` // Capture remaining fields
}

// CacheConfig holds configuration for the token verification cache.
// Both values are optional; nil means "use the default". An explicit zero
// is meaningful: ttl_seconds=0 forces re-resolution on every attempt and
// max_entries=0 disables caching entirely.
type CacheConfig struct {
	TTLSeconds *int `yaml:"ttl_seconds"`
	MaxEntries *int `yaml:"max_entries"`
}

func (c CacheConfig) TTL() time.Duration {
	if c.TTLSeconds == nil {
		return DefaultCacheTTLSeconds * time.Second
	}
	return time.Duration(*c.TTLSeconds) * time.Second
}

func (c CacheConfig) Capacity() int {
	if c.MaxEntries == nil {
		return DefaultCacheMaxEntries
	}
	return *c.MaxEntries
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Type    string `yaml:"type"` // e.g., "file", "memory"
}

// AdminConfig guards the admin endpoints (audit log, cache stats).
// When SigningKey is empty, the admin surface is disabled.
type AdminConfig struct {
	SigningKey string `yaml:"signing_key"`
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Resolver.Type == "" {
		return fmt.Errorf("resolver type is required")
	}
	if c.Resolver.Name == "" {
		c.Resolver.Name = c.Resolver.Type
	}

	if c.Cache.TTLSeconds != nil && *c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache ttl_seconds must not be negative")
	}
	if c.Cache.MaxEntries != nil && *c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache max_entries must not be negative")
	}

	if c.Audit.Enabled {
		switch c.Audit.Type {
		case "", "memory":
		case "file":
			if c.Audit.Path == "" {
				return fmt.Errorf("audit type 'file' requires a path")
			}
		default:
			return fmt.Errorf("unknown audit type %q", c.Audit.Type)
		}
	}

	return nil
}
