package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/ch1tg/GameTrackr-web/pkg/config"
)

// Config holds all configuration for the GameTrackr web frontend.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`

	// Upstream GameTrackr REST API
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:80"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// CSRF double-submit pair used by the upstream API.
	CSRFCookieName string `env:"CSRF_COOKIE_NAME" envDefault:"csrf_access_token"`
	CSRFHeaderName string `env:"CSRF_HEADER_NAME" envDefault:"X-CSRF-TOKEN"`

	// Response cache for public API reads. Empty address disables caching.
	RedisAddr string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Browser app sessions
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionSecure bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`

	// Search preview debounce
	PreviewDelay time.Duration `env:"PREVIEW_DELAY" envDefault:"500ms"`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Observability
	MetricsAllowedCIDRs []string `env:"METRICS_ALLOWED_CIDRS" envSeparator:"," envDefault:"127.0.0.0/8,10.0.0.0/8"`
	OTELEnabled         bool     `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint        string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate      float64  `env:"OTEL_SAMPLE_RATE" envDefault:"0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load web config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL %s is below the one minute minimum", c.SessionTTL)
	}
	if c.Environment != "development" && !c.SessionSecure {
		return fmt.Errorf("SESSION_SECURE_COOKIE must be enabled in %s environment", c.Environment)
	}
	return nil
}
