// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Search     SearchConfig
	Resilience ResilienceConfig
	Providers  ProvidersConfig
	Cache      CacheConfig
	Logging    LoggingConfig
	App        AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// SearchConfig holds settings for the search fan-out and result shaping.
type SearchConfig struct {
	// GlobalTimeout bounds the whole search across all providers.
	GlobalTimeout time.Duration `env:"SEARCH_GLOBAL_TIMEOUT" envDefault:"25s"`

	// ProviderTimeout bounds each individual provider call, retries included.
	ProviderTimeout time.Duration `env:"SEARCH_PROVIDER_TIMEOUT" envDefault:"20s"`

	// MaxResults caps the ranked flight list returned to clients.
	MaxResults int `env:"SEARCH_MAX_RESULTS" envDefault:"30"`

	// PreferFlexible enables the flexibility preference tiers.
	PreferFlexible bool `env:"SEARCH_PREFER_FLEXIBLE" envDefault:"true"`
}

// ResilienceConfig holds retry, circuit breaker, and rate limit settings
// applied to outbound supplier calls.
type ResilienceConfig struct {
	RetryMaxAttempts  int           `env:"RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryInitialDelay time.Duration `env:"RETRY_INITIAL_DELAY" envDefault:"2s"`
	RetryMultiplier   float64       `env:"RETRY_MULTIPLIER" envDefault:"2.0"`

	BreakerFailureThreshold int           `env:"BREAKER_FAILURE_THRESHOLD" envDefault:"3"`
	BreakerCooldown         time.Duration `env:"BREAKER_COOLDOWN" envDefault:"60s"`

	RateLimitRPS   float64 `env:"PROVIDER_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"PROVIDER_RATE_LIMIT_BURST" envDefault:"20"`
}

// ProvidersConfig holds per-supplier connection settings.
type ProvidersConfig struct {
	Duffel  DuffelConfig
	Amadeus AmadeusConfig
	Kiwi    KiwiConfig
}

// DuffelConfig holds Duffel API settings.
type DuffelConfig struct {
	Enabled          bool          `env:"DUFFEL_ENABLED" envDefault:"true"`
	BaseURL          string        `env:"DUFFEL_BASE_URL" envDefault:"https://api.duffel.com"`
	APIToken         string        `env:"DUFFEL_API_TOKEN"`
	MinOfferValidity time.Duration `env:"DUFFEL_MIN_OFFER_VALIDITY" envDefault:"5m"`
}

// AmadeusConfig holds Amadeus API settings.
type AmadeusConfig struct {
	Enabled   bool   `env:"AMADEUS_ENABLED" envDefault:"true"`
	BaseURL   string `env:"AMADEUS_BASE_URL" envDefault:"https://test.api.amadeus.com"`
	APIKey    string `env:"AMADEUS_API_KEY"`
	APISecret string `env:"AMADEUS_API_SECRET"`
}

// KiwiConfig holds Kiwi Tequila API settings.
type KiwiConfig struct {
	Enabled bool   `env:"KIWI_ENABLED" envDefault:"true"`
	BaseURL string `env:"KIWI_BASE_URL" envDefault:"https://api.tequila.kiwi.com"`
	APIKey  string `env:"KIWI_API_KEY"`
}

// CacheConfig holds Redis result cache settings.
type CacheConfig struct {
	Enabled       bool   `env:"CACHE_ENABLED" envDefault:"false"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// TTL is how long merged search results stay cached. Keep it below
	// the shortest supplier offer validity window.
	TTL time.Duration `env:"CACHE_TTL" envDefault:"2m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"json"`
	ServiceName string `env:"LOG_SERVICE_NAME" envDefault:"flight-search"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	if cfg.Search.GlobalTimeout <= 0 {
		return fmt.Errorf("SEARCH_GLOBAL_TIMEOUT must be positive")
	}
	if cfg.Search.ProviderTimeout <= 0 {
		return fmt.Errorf("SEARCH_PROVIDER_TIMEOUT must be positive")
	}
	if cfg.Search.ProviderTimeout >= cfg.Search.GlobalTimeout {
		return fmt.Errorf("SEARCH_PROVIDER_TIMEOUT (%s) should be less than SEARCH_GLOBAL_TIMEOUT (%s)",
			cfg.Search.ProviderTimeout, cfg.Search.GlobalTimeout)
	}
	// The client never sees results the server gave up writing.
	if cfg.Server.WriteTimeout <= cfg.Search.GlobalTimeout {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT (%s) should exceed SEARCH_GLOBAL_TIMEOUT (%s)",
			cfg.Server.WriteTimeout, cfg.Search.GlobalTimeout)
	}
	if cfg.Search.MaxResults < 1 {
		return fmt.Errorf("SEARCH_MAX_RESULTS must be at least 1, got %d", cfg.Search.MaxResults)
	}

	if cfg.Resilience.RetryMaxAttempts < 1 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", cfg.Resilience.RetryMaxAttempts)
	}
	if cfg.Resilience.RetryInitialDelay <= 0 {
		return fmt.Errorf("RETRY_INITIAL_DELAY must be positive")
	}
	if cfg.Resilience.RetryMultiplier < 1 {
		return fmt.Errorf("RETRY_MULTIPLIER must be at least 1, got %g", cfg.Resilience.RetryMultiplier)
	}
	if cfg.Resilience.BreakerFailureThreshold < 1 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1, got %d", cfg.Resilience.BreakerFailureThreshold)
	}
	if cfg.Resilience.BreakerCooldown <= 0 {
		return fmt.Errorf("BREAKER_COOLDOWN must be positive")
	}
	if cfg.Resilience.RateLimitRPS <= 0 {
		return fmt.Errorf("PROVIDER_RATE_LIMIT_RPS must be positive, got %g", cfg.Resilience.RateLimitRPS)
	}
	if cfg.Resilience.RateLimitBurst < 1 {
		return fmt.Errorf("PROVIDER_RATE_LIMIT_BURST must be at least 1, got %d", cfg.Resilience.RateLimitBurst)
	}

	if cfg.Cache.Enabled {
		if cfg.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_ENABLED is true")
		}
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("CACHE_TTL must be positive")
		}
	}

	if err := validateProviders(cfg); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// validateProviders checks that enabled suppliers have credentials and
// that at least one supplier is enabled.
func validateProviders(cfg *Config) error {
	p := cfg.Providers
	if !p.Duffel.Enabled && !p.Amadeus.Enabled && !p.Kiwi.Enabled {
		return fmt.Errorf("at least one provider must be enabled")
	}

	if p.Duffel.Enabled {
		if p.Duffel.BaseURL == "" {
			return fmt.Errorf("DUFFEL_BASE_URL is required when DUFFEL_ENABLED is true")
		}
		if p.Duffel.APIToken == "" {
			return fmt.Errorf("DUFFEL_API_TOKEN is required when DUFFEL_ENABLED is true")
		}
	}
	if p.Amadeus.Enabled {
		if p.Amadeus.BaseURL == "" {
			return fmt.Errorf("AMADEUS_BASE_URL is required when AMADEUS_ENABLED is true")
		}
		if p.Amadeus.APIKey == "" || p.Amadeus.APISecret == "" {
			return fmt.Errorf("AMADEUS_API_KEY and AMADEUS_API_SECRET are required when AMADEUS_ENABLED is true")
		}
	}
	if p.Kiwi.Enabled {
		if p.Kiwi.BaseURL == "" {
			return fmt.Errorf("KIWI_BASE_URL is required when KIWI_ENABLED is true")
		}
		if p.Kiwi.APIKey == "" {
			return fmt.Errorf("KIWI_API_KEY is required when KIWI_ENABLED is true")
		}
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
