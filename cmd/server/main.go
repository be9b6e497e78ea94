// Package main is the entry point for the flight search aggregation service.
//
//	@title						Biajez Flight Search API
//	@version					1.0.0
//	@description				A flight search aggregation service that fans out to multiple travel suppliers, merges and deduplicates their offers, and returns a single ranked result list.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/edsonnoyola/Biajez-sub000/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	// Import generated docs for swagger
	_ "github.com/edsonnoyola/Biajez-sub000/docs"

	// Application layers
	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/cache"
	flighthttp "github.com/edsonnoyola/Biajez-sub000/internal/adapter/http"
	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/http/middleware"
	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/provider/amadeus"
	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/provider/duffel"
	"github.com/edsonnoyola/Biajez-sub000/internal/adapter/provider/kiwi"
	"github.com/edsonnoyola/Biajez-sub000/internal/config"
	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/metrics"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/resilience"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/retry"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/timeutil"
	"github.com/edsonnoyola/Biajez-sub000/internal/usecase"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: cfg.Logging.ServiceName,
	})
	logger.SetGlobal(log)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	m := metrics.New(prometheus.NewRegistry())

	executor := buildExecutor(cfg, m, log)
	registry := buildProviders(cfg, executor, log)
	resultCache := buildCache(cfg, log)

	engine := usecase.NewSearchEngine(registry, resultCache, &usecase.Config{
		GlobalTimeout:   cfg.Search.GlobalTimeout,
		ProviderTimeout: cfg.Search.ProviderTimeout,
		CacheTTL:        cfg.Cache.TTL,
		Scoring:         usecase.DefaultScoringConfig(),
		Filter: usecase.FilterPolicy{
			PreferFlexible: cfg.Search.PreferFlexible,
			MaxResults:     cfg.Search.MaxResults,
		},
	}, log, m)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log, m)

	handler := flighthttp.NewFlightHandler(engine, executor.Breakers())
	flighthttp.RegisterRoutes(e, handler, m)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, log, cfg.Server.ShutdownTimeout)
}

// buildExecutor assembles the resilience chain shared by all supplier
// adapters: per-provider rate limits, circuit breakers, and retries.
func buildExecutor(cfg *config.Config, m *metrics.Metrics, log *logger.Logger) *resilience.Executor {
	limiter := resilience.NewProviderLimiter(resilience.RateLimitConfig{
		RequestsPerSecond: cfg.Resilience.RateLimitRPS,
		BurstSize:         cfg.Resilience.RateLimitBurst,
	})

	breakers := resilience.NewBreakerStore(resilience.BreakerConfig{
		FailureThreshold: cfg.Resilience.BreakerFailureThreshold,
		Cooldown:         cfg.Resilience.BreakerCooldown,
		OnStateChange: func(name string, from, to resilience.State) {
			m.IncCircuitTransition(name, to.String())
			log.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state change")
		},
	}, timeutil.NewRealClock())

	retryCfg := retry.Config{
		MaxAttempts:  cfg.Resilience.RetryMaxAttempts,
		InitialDelay: cfg.Resilience.RetryInitialDelay,
		MaxDelay:     retry.DefaultConfig.MaxDelay,
		Multiplier:   cfg.Resilience.RetryMultiplier,
		JitterFactor: retry.DefaultConfig.JitterFactor,
	}

	return resilience.NewExecutor(limiter, breakers, retryCfg, m, log)
}

// buildProviders registers every enabled supplier adapter.
func buildProviders(cfg *config.Config, exec *resilience.Executor, log *logger.Logger) *domain.ProviderRegistry {
	registry := domain.NewProviderRegistry()
	clock := timeutil.NewRealClock()

	// Per-request deadlines come from the search context; the client
	// timeout is a backstop for requests without one.
	client := &http.Client{Timeout: cfg.Search.ProviderTimeout}

	if cfg.Providers.Duffel.Enabled {
		registry.Register(duffel.NewAdapter(duffel.Config{
			BaseURL:          cfg.Providers.Duffel.BaseURL,
			APIToken:         cfg.Providers.Duffel.APIToken,
			MinOfferValidity: cfg.Providers.Duffel.MinOfferValidity,
		}, client, exec, clock, log))
	}

	if cfg.Providers.Amadeus.Enabled {
		registry.Register(amadeus.NewAdapter(amadeus.Config{
			BaseURL:   cfg.Providers.Amadeus.BaseURL,
			APIKey:    cfg.Providers.Amadeus.APIKey,
			APISecret: cfg.Providers.Amadeus.APISecret,
		}, client, exec, clock, log))
	}

	if cfg.Providers.Kiwi.Enabled {
		registry.Register(kiwi.NewAdapter(kiwi.Config{
			BaseURL: cfg.Providers.Kiwi.BaseURL,
			APIKey:  cfg.Providers.Kiwi.APIKey,
		}, client, exec, log))
	}

	log.Info().
		Strs("providers", registry.Names()).
		Msg("Providers registered")

	return registry
}

// buildCache connects the Redis result cache when enabled. A nil return
// disables caching in the search engine.
func buildCache(cfg *config.Config, log *logger.Logger) usecase.ResultCache {
	if !cfg.Cache.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	log.Info().
		Str("addr", cfg.Cache.RedisAddr).
		Dur("ttl", cfg.Cache.TTL).
		Msg("Redis result cache enabled")

	return cache.NewFlightCache(client)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger, timeout time.Duration) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
