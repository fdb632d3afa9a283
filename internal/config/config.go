// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	GatewayURL     string `mapstructure:"GATEWAY_URL"`
	GatewayAnonKey string `mapstructure:"GATEWAY_ANON_KEY"`
	Origin         string `mapstructure:"ORIGIN"`
	StateDir       string `mapstructure:"STATE_DIR"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	MetricsAddr    string `mapstructure:"METRICS_ADDR"`
	Env            string `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// Initial read to get APP_ENV if set in base config
	// We intentionally ignore this error as the config file may not exist yet
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading profile-specific config 'config.%s.yml': %w", env, err)
			}
		} else {
			log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
		}
	}

	// Set default values for development
	viper.SetDefault("GATEWAY_URL", "http://localhost:54321")
	viper.SetDefault("GATEWAY_ANON_KEY", "anon-key-change-me")
	viper.SetDefault("ORIGIN", "http://localhost:5173")
	viper.SetDefault("STATE_DIR", ".")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("METRICS_ADDR", "")
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and usable.
func (c *Config) Validate() error {
	if c.GatewayURL == "" {
		return errors.New("GATEWAY_URL is required")
	}
	if u, err := url.Parse(c.GatewayURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GATEWAY_URL %q is not a valid absolute URL", c.GatewayURL)
	}
	if c.Origin != "" {
		if u, err := url.Parse(c.Origin); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("ORIGIN %q is not a valid absolute URL", c.Origin)
		}
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if c.GatewayAnonKey == "" || c.GatewayAnonKey == "anon-key-change-me" {
			return errors.New("GATEWAY_ANON_KEY must be set to a real key in production")
		}
	} else if c.GatewayAnonKey == "anon-key-change-me" {
		log.Println("WARNING: GATEWAY_ANON_KEY is the development placeholder.")
	}

	return nil
}
