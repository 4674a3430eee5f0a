package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/QinCai-rui/The-Forbidden-Sector/pkg/logging"
)

// EnvPrefix is the prefix for all environment overrides, e.g. SECTOR_SERVER_PORT.
const EnvPrefix = "SECTOR"

// Session store types
const (
	StoreTypeMemory = "memory"
	StoreTypeRedis  = "redis"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server" envconfig:"SERVER"`
	CORS         CORSConfig         `yaml:"cors" envconfig:"CORS"`
	SessionStore SessionStoreConfig `yaml:"session_store" envconfig:"SESSION_STORE"`
	Content      ContentConfig      `yaml:"content" envconfig:"CONTENT"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Logging      logging.Config     `yaml:"logging" envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host       string `yaml:"host" envconfig:"HOST"`
	Port       int    `yaml:"port" envconfig:"PORT"`
	AdminPort  int    `yaml:"admin_port" envconfig:"ADMIN_PORT"`   // Internal admin API port (0 to disable)
	AdminToken string `yaml:"admin_token" envconfig:"ADMIN_TOKEN"` // Bearer token for admin API (auto-generated if empty)
}

// CORSConfig configures the public router's CORS middleware
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	AllowedMethods []string `yaml:"allowed_methods" envconfig:"ALLOWED_METHODS"`
	AllowedHeaders []string `yaml:"allowed_headers" envconfig:"ALLOWED_HEADERS"`
	MaxAge         int      `yaml:"max_age" envconfig:"MAX_AGE"` // seconds
}

// SessionStoreConfig selects and configures the session backend
type SessionStoreConfig struct {
	// Type is the session store type: "memory" or "redis"
	Type string `yaml:"type" envconfig:"TYPE"`
	// TTLHours bounds session lifetime in the redis backend
	TTLHours int         `yaml:"ttl_hours" envconfig:"TTL_HOURS"`
	Redis    RedisConfig `yaml:"redis" envconfig:"REDIS"`
}

// TTL returns the session lifetime as a duration
func (c *SessionStoreConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host               string `yaml:"host" envconfig:"HOST"`
	Port               int    `yaml:"port" envconfig:"PORT"`
	Password           string `yaml:"password" envconfig:"PASSWORD"`
	DB                 int    `yaml:"db" envconfig:"DB"`
	KeyPrefix          string `yaml:"key_prefix" envconfig:"KEY_PREFIX"`
	DialTimeoutSeconds int    `yaml:"dial_timeout_seconds" envconfig:"DIAL_TIMEOUT_SECONDS"`
}

// Address returns host:port for the redis client
func (c *RedisConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ContentConfig points at the static asset directory
type ContentConfig struct {
	// Root is the asset directory; empty serves the compiled-in bundle
	Root string `yaml:"root" envconfig:"ROOT"`
}

// RateLimitConfig limits attempts against credential and answer endpoints
type RateLimitConfig struct {
	Enabled        bool `yaml:"enabled" envconfig:"ENABLED"`
	MaxAttempts    int  `yaml:"max_attempts" envconfig:"MAX_ATTEMPTS"`
	WindowSeconds  int  `yaml:"window_seconds" envconfig:"WINDOW_SECONDS"`
	LockoutSeconds int  `yaml:"lockout_seconds" envconfig:"LOCKOUT_SECONDS"`
}

// SetDefaults fills zero values
func (c *RateLimitConfig) SetDefaults() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 20
	}
	if c.WindowSeconds <= 0 {
		c.WindowSeconds = 60
	}
	if c.LockoutSeconds <= 0 {
		c.LockoutSeconds = 60
	}
}

// Load loads configuration from file and environment variables
func Load(configFile string) (*Config, error) {
	cfg := defaultConfig()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// File doesn't exist, that's ok - we'll use defaults and env vars
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Environment variables have the highest priority
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	return defaultConfig()
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      9082,
			AdminPort: 9083,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         12 * 60 * 60,
		},
		SessionStore: SessionStoreConfig{
			Type:     StoreTypeRedis,
			TTLHours: 24,
			Redis: RedisConfig{
				Host:               "localhost",
				Port:               6379,
				DialTimeoutSeconds: 5,
			},
		},
		Content: ContentConfig{
			Root: "web",
		},
		RateLimit: RateLimitConfig{
			Enabled:        true,
			MaxAttempts:    20,
			WindowSeconds:  60,
			LockoutSeconds: 60,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.AdminPort < 0 || c.Server.AdminPort > 65535 {
		return fmt.Errorf("invalid admin port: %d", c.Server.AdminPort)
	}

	if c.Server.AdminPort != 0 && c.Server.AdminPort == c.Server.Port {
		return fmt.Errorf("admin port must differ from server port (%d)", c.Server.Port)
	}

	switch c.SessionStore.Type {
	case StoreTypeMemory:
	case StoreTypeRedis:
		if c.SessionStore.Redis.Host == "" {
			return fmt.Errorf("redis host is required when using redis session store")
		}
		if c.SessionStore.Redis.Port < 1 || c.SessionStore.Redis.Port > 65535 {
			return fmt.Errorf("invalid redis port: %d", c.SessionStore.Redis.Port)
		}
	default:
		return fmt.Errorf("invalid session store type: %s (must be memory or redis)", c.SessionStore.Type)
	}

	if c.SessionStore.TTLHours <= 0 {
		return fmt.Errorf("session ttl_hours must be positive")
	}

	if c.Logging.Level != "" && !logging.IsValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// Address returns the server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AdminAddress returns the admin server address
func (c *ServerConfig) AdminAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.AdminPort)
}
