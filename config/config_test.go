package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "APP_MODE", "CLIENT_NAMES", "EVENTS_ENABLED", "REDIS_DB", "SHUTDOWN_TIMEOUT_SEC"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "debug", cfg.AppMode)
	assert.Equal(t, []string{"demo"}, cfg.ClientNames)
	assert.False(t, cfg.EventsEnabled)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "3000")
	t.Setenv("APP_MODE", "release")
	t.Setenv("CLIENT_NAMES", " test1, ,test2 ")
	t.Setenv("EVENTS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SHUTDOWN_TIMEOUT_SEC", "10")

	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, "release", cfg.AppMode)
	assert.Equal(t, []string{"test1", "test2"}, cfg.ClientNames)
	assert.True(t, cfg.EventsEnabled)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{AppPort: "8080", ClientNames: []string{"a", "b"}, ShutdownTimeout: time.Second}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty port", func(c *Config) { c.AppPort = "" }},
		{"no clients", func(c *Config) { c.ClientNames = nil }},
		{"slash in name", func(c *Config) { c.ClientNames = []string{"a/b"} }},
		{"duplicate name", func(c *Config) { c.ClientNames = []string{"a", "a"} }},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
	}

	require.NoError(t, base().Validate())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
