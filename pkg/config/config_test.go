package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	cfg := defaultConfig()

	err := cfg.Validate()
	if err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Validate_InvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port too low", 0},
		{"port negative", -1},
		{"port too high", 65536},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Server.Port = tt.port

			err := cfg.Validate()
			if err == nil {
				t.Error("Expected validation error for invalid port")
			}
		})
	}
}

func TestConfig_Validate_AdminPortClash(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.AdminPort = cfg.Server.Port

	assert.Error(t, cfg.Validate())

	cfg.Server.AdminPort = 0
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_SessionStore(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"memory", func(c *Config) { c.SessionStore.Type = StoreTypeMemory }, false},
		{"redis", func(c *Config) { c.SessionStore.Type = StoreTypeRedis }, false},
		{"unknown type", func(c *Config) { c.SessionStore.Type = "mongodb" }, true},
		{"redis without host", func(c *Config) { c.SessionStore.Redis.Host = "" }, true},
		{"redis bad port", func(c *Config) { c.SessionStore.Redis.Port = 70000 }, true},
		{"memory ignores redis", func(c *Config) {
			c.SessionStore.Type = StoreTypeMemory
			c.SessionStore.Redis.Host = ""
		}, false},
		{"zero ttl", func(c *Config) { c.SessionStore.TTLHours = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9082, cfg.Server.Port)
	assert.Equal(t, StoreTypeRedis, cfg.SessionStore.Type)
	assert.Equal(t, "localhost:6379", cfg.SessionStore.Redis.Address())
	assert.Equal(t, 24*time.Hour, cfg.SessionStore.TTL())
	assert.Equal(t, "web", cfg.Content.Root)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 9082, cfg.Server.Port)
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9999
  admin_port: 0
session_store:
  type: memory
content:
  root: ""
logging:
  level: debug
  format: text
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 0, cfg.Server.AdminPort)
	assert.Equal(t, StoreTypeMemory, cfg.SessionStore.Type)
	assert.Equal(t, "", cfg.Content.Root)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	// untouched sections keep their defaults
	assert.Equal(t, 24, cfg.SessionStore.TTLHours)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SECTOR_SERVER_PORT", "7000")
	t.Setenv("SECTOR_SESSION_STORE_REDIS_HOST", "cache.internal")
	t.Setenv("SECTOR_SESSION_STORE_REDIS_PORT", "6380")
	t.Setenv("SECTOR_RATE_LIMIT_ENABLED", "false")
	t.Setenv("SECTOR_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "cache.internal:6380", cfg.SessionStore.Redis.Address())
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_EnvInvalid(t *testing.T) {
	t.Setenv("SECTOR_SESSION_STORE_TYPE", "etcd")

	_, err := Load("")
	assert.Error(t, err)
}

func TestRateLimitConfig_SetDefaults(t *testing.T) {
	cfg := RateLimitConfig{}
	cfg.SetDefaults()

	assert.Equal(t, 20, cfg.MaxAttempts)
	assert.Equal(t, 60, cfg.WindowSeconds)
	assert.Equal(t, 60, cfg.LockoutSeconds)

	custom := RateLimitConfig{MaxAttempts: 3, WindowSeconds: 10, LockoutSeconds: 5}
	custom.SetDefaults()
	assert.Equal(t, 3, custom.MaxAttempts)
}

func TestServerConfig_Address(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9082, AdminPort: 9083}
	assert.Equal(t, "127.0.0.1:9082", s.Address())
	assert.Equal(t, "127.0.0.1:9083", s.AdminAddress())
}
