package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the namestorm service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"namestorm-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8084"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Model gateway (OpenAI-compatible chat completions endpoint).
	LLMAPIURL      string  `env:"LLM_API_URL" envDefault:"https://api.openai.com"`
	LLMAPIKey      string  `env:"LLM_API_KEY"`
	LLMModel       string  `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTemperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.9"`

	// Domain availability checking.
	DNSTimeout     time.Duration `env:"DNS_LOOKUP_TIMEOUT" envDefault:"3s"`
	DNSConcurrency int           `env:"DNS_LOOKUP_CONCURRENCY" envDefault:"16"`
	DefaultTLDs    []string      `env:"DEFAULT_TLDS" envSeparator:"," envDefault:".com,.io,.dev,.app,.ai"`

	// Optional Redis lookup cache. Disabled when RedisAddr is empty.
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"DOMAIN_CACHE_TTL" envDefault:"10m"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.DNSConcurrency <= 0 {
		cfg.DNSConcurrency = 16
	}
	if cfg.DNSTimeout <= 0 {
		cfg.DNSTimeout = 3 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if len(cfg.DefaultTLDs) == 0 {
		return nil, fmt.Errorf("DEFAULT_TLDS must name at least one TLD")
	}

	return cfg, nil
}

// GatewayConfigured reports whether the model gateway credential is present.
func (c *Config) GatewayConfigured() bool {
	return strings.TrimSpace(c.LLMAPIKey) != ""
}

// CacheEnabled reports whether the Redis lookup cache should be wired.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
