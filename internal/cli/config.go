package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/chartbridge/config.toml. Every field has a working default, so a
// missing file is not an error.
type Config struct {
	// DefaultType is the chart type used when --type is not given.
	DefaultType string `toml:"default_type"`

	Server ServerConfig `toml:"server"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// Store selects the instance registry backend: memory, file, redis, or
	// mongo.
	Store string `toml:"store"`

	// RedisAddr is the Redis address for the redis backend.
	RedisAddr string `toml:"redis_addr"`

	// MongoURI is the connection string for the mongo backend.
	MongoURI string `toml:"mongo_uri"`

	// CacheTTL bounds how long built configurations stay cached, as a
	// duration string ("1h", "30m"). Empty means entries never expire.
	CacheTTL string `toml:"cache_ttl"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		DefaultType: "bar",
		Server: ServerConfig{
			Addr:      ":8753",
			Store:     "memory",
			RedisAddr: "localhost:6379",
		},
	}
}

// LoadConfig reads the config file at path, layering it over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault reads the standard config file, falling back to the
// defaults when it is absent or unreadable.
func LoadConfigOrDefault() *Config {
	dir, err := configDir()
	if err != nil {
		return DefaultConfig()
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// ParsedCacheTTL returns the server cache TTL as a duration.
// An empty or malformed value means no expiration.
func (c *Config) ParsedCacheTTL() time.Duration {
	if c.Server.CacheTTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Server.CacheTTL)
	if err != nil {
		return 0
	}
	return d
}
