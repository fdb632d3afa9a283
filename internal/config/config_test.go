package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing gateway url", func(c *Config) { c.GatewayURL = "" }, true},
		{"relative gateway url", func(c *Config) { c.GatewayURL = "localhost:54321" }, true},
		{"invalid origin", func(c *Config) { c.Origin = "not a url" }, true},
		{"empty origin is allowed", func(c *Config) { c.Origin = "" }, false},
		{"production with placeholder key", func(c *Config) {
			c.Env = "production"
			c.GatewayAnonKey = "anon-key-change-me"
		}, true},
		{"production with empty key", func(c *Config) {
			c.Env = "prod"
			c.GatewayAnonKey = ""
		}, true},
		{"production with real key", func(c *Config) {
			c.Env = "production"
			c.GatewayAnonKey = "real-key"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				GatewayURL:     "http://localhost:54321",
				GatewayAnonKey: "some-key",
				Origin:         "http://localhost:5173",
				StateDir:       ".",
				Env:            "development",
			}
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")
	os.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:54321", cfg.GatewayURL)
	assert.Equal(t, "http://localhost:5173", cfg.Origin)
	assert.Equal(t, ".", cfg.StateDir)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "development", cfg.Env)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("GATEWAY_URL")
	defer os.Unsetenv("GATEWAY_ANON_KEY")

	os.Setenv("APP_ENV", "production")
	os.Setenv("GATEWAY_URL", "https://tribex.example.com")
	os.Setenv("GATEWAY_ANON_KEY", "prod-anon-key")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://tribex.example.com", cfg.GatewayURL)
	assert.Equal(t, "prod-anon-key", cfg.GatewayAnonKey)
	assert.Equal(t, "production", cfg.Env)
}
