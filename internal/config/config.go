// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/ZaguanLabs/polytrans/provider"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the process-wide configuration.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	ServerRegion    string `envconfig:"POLYTRANS_SERVER_REGION" default:"EN"`
	DefaultProvider string `envconfig:"POLYTRANS_DEFAULT_PROVIDER" default:"google"`
	Workers         int    `envconfig:"POLYTRANS_WORKERS" default:"0"`
	HTTPAddr        string `envconfig:"POLYTRANS_HTTP_ADDR" default:":8080"`
	RateLimitRPM    int    `envconfig:"POLYTRANS_RATE_LIMIT_RPM" default:"0"`
	MaxRetries      int    `envconfig:"POLYTRANS_MAX_RETRIES" default:"0"`

	LibreURL    string `envconfig:"LIBRE_URL" default:"https://libretranslate.com"`
	LibreAPIKey string `envconfig:"LIBRE_API_KEY"`
	LingvaURL   string `envconfig:"LINGVA_URL" default:"https://lingva.ml"`
	GoogleHost  string `envconfig:"GOOGLE_HOST"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	RedisURL        string `envconfig:"REDIS_URL"`
	CacheTTLSeconds int    `envconfig:"CACHE_TTL_SECONDS" default:"86400"`
}

// LoadEnvFile loads a .env file into the environment, overriding existing values.
// An empty path is a no-op.
func LoadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Overload(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.ServerRegion = strings.ToUpper(strings.TrimSpace(cfg.ServerRegion))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.ServerRegion {
	case provider.RegionEN, provider.RegionCN:
	default:
		return fmt.Errorf("POLYTRANS_SERVER_REGION must be %s or %s, got %q", provider.RegionEN, provider.RegionCN, c.ServerRegion)
	}
	if strings.TrimSpace(c.DefaultProvider) == "" {
		return fmt.Errorf("POLYTRANS_DEFAULT_PROVIDER is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("POLYTRANS_WORKERS must be >= 0")
	}
	if c.RateLimitRPM < 0 {
		return fmt.Errorf("POLYTRANS_RATE_LIMIT_RPM must be >= 0")
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("POLYTRANS_MAX_RETRIES must be between 0 and 10")
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be >= 0")
	}
	return nil
}

// ProviderConfig maps the configuration onto the adapter registry settings.
func (c *Config) ProviderConfig() provider.Config {
	return provider.Config{
		Region:      c.ServerRegion,
		LibreURL:    c.LibreURL,
		LibreAPIKey: c.LibreAPIKey,
		LingvaURL:   c.LingvaURL,
		GoogleHost:  c.GoogleHost,
		OpenAI: provider.OpenAIConfig{
			APIKey:  c.OpenAIAPIKey,
			Model:   c.OpenAIModel,
			BaseURL: c.OpenAIBaseURL,
		},
		RateLimitRPM: c.RateLimitRPM,
		MaxRetries:   c.MaxRetries,
	}
}
