package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/0Rorschach1/midterm-exam/internal/shortener"
)

// ErrInvalidConfiguration wraps every validation failure. Configuration is
// validated once at startup; it is never a per-request condition.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// EnvPrefix is the prefix for environment variable overrides,
// e.g. SHORTENER_SERVER_PORT
const EnvPrefix = "SHORTENER"

// Cache backend identifiers
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Cleanup   CleanupConfig
	Logging   LoggingConfig
	Shortener shortener.Config
	Expiry    ExpiryConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port      string
	ServerURL string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string
}

// CacheConfig holds lookup-cache configuration
type CacheConfig struct {
	Backend   string
	RedisAddr string
}

// CleanupConfig holds background sweep configuration
type CleanupConfig struct {
	Interval time.Duration
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Verbose bool
}

// ExpiryConfig holds record expiration configuration
type ExpiryConfig struct {
	TTLMinutes int
}

// TTL returns the record time-to-live as a duration
func (e ExpiryConfig) TTL() time.Duration {
	return time.Duration(e.TTLMinutes) * time.Minute
}

// SetDefaults registers the default value for every configuration key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("database.path", "urls.db")
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cleanup.interval", 10*time.Minute)
	v.SetDefault("logging.verbose", false)
	v.SetDefault("shortener.length", 6)
	v.SetDefault("shortener.alphabet", shortener.Base62Alphabet)
	v.SetDefault("shortener.attempts", 10)
	v.SetDefault("expiry.ttl_minutes", 1440)
}

// Load builds and validates a Config from the given viper instance.
// Precedence is flags over environment over defaults, which callers
// arrange by binding flags before loading.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      v.GetString("server.port"),
			ServerURL: v.GetString("server.url"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Cache: CacheConfig{
			Backend:   v.GetString("cache.backend"),
			RedisAddr: v.GetString("cache.redis_addr"),
		},
		Cleanup: CleanupConfig{
			Interval: v.GetDuration("cleanup.interval"),
		},
		Logging: LoggingConfig{
			Verbose: v.GetBool("logging.verbose"),
		},
		Shortener: shortener.Config{
			Length:   v.GetInt("shortener.length"),
			Alphabet: v.GetString("shortener.alphabet"),
			Attempts: v.GetInt("shortener.attempts"),
		},
		Expiry: ExpiryConfig{
			TTLMinutes: v.GetInt("expiry.ttl_minutes"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return cfg, nil
}

// validate validates the configuration values
func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.Server.ServerURL == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	switch c.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("redis address cannot be empty with the redis cache backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}

	if c.Cleanup.Interval <= 0 {
		return fmt.Errorf("cleanup interval must be positive, got: %v", c.Cleanup.Interval)
	}

	if err := c.Shortener.Validate(); err != nil {
		return err
	}

	// TTL is always a fixed positive duration; there is no infinite mode
	if c.Expiry.TTLMinutes <= 0 {
		return fmt.Errorf("ttl minutes must be positive, got: %d", c.Expiry.TTLMinutes)
	}

	return nil
}
