package provider

import (
	"github.com/ZaguanLabs/polytrans"
	"github.com/rs/zerolog"
)

// Config selects and configures the built-in adapters.
type Config struct {
	Region      string // Server region: EN (default) or CN
	LibreURL    string
	LibreAPIKey string
	LingvaURL   string
	GoogleHost  string // Overrides the region host
	OpenAI      OpenAIConfig

	RateLimitRPM int // Per-adapter requests per minute (0 = unlimited)
	MaxRetries   int // Retries on transient backend failures
	DisableMock  bool
}

// NewRegistry builds the registry of built-in adapters. OpenAI is registered only
// when an API key is configured.
func NewRegistry(cfg Config, logger zerolog.Logger) (*polytrans.Registry, error) {
	opts := []polytrans.BaseOption{polytrans.WithAdapterLogger(logger)}
	if cfg.RateLimitRPM > 0 {
		opts = append(opts, polytrans.WithRateLimit(polytrans.RateLimitConfig{RequestsPerMinute: cfg.RateLimitRPM}))
	}
	if cfg.MaxRetries > 0 {
		retry := polytrans.DefaultRetryConfig()
		retry.MaxRetries = cfg.MaxRetries
		opts = append(opts, polytrans.WithBackendRetry(retry))
	}

	adapters := []polytrans.Adapter{
		NewLibre(LibreConfig{URL: cfg.LibreURL, APIKey: cfg.LibreAPIKey}, opts...),
		NewLingva(cfg.LingvaURL, opts...),
		NewGoogle(cfg.GoogleHost, cfg.Region, opts...),
	}
	if cfg.OpenAI.APIKey != "" {
		adapters = append(adapters, NewOpenAI(cfg.OpenAI, opts...))
	}
	if !cfg.DisableMock {
		adapters = append(adapters, NewMockProvider(opts...))
	}

	logger.Debug().Int("adapters", len(adapters)).Str("region", cfg.Region).Msg("provider registry built")
	return polytrans.NewRegistry(adapters...)
}
