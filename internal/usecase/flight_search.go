package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/logger"
	"github.com/edsonnoyola/Biajez-sub000/internal/infrastructure/metrics"
)

// Default timeout values.
const (
	DefaultGlobalTimeout   = 25 * time.Second
	DefaultProviderTimeout = 20 * time.Second
	DefaultCacheTTL        = 2 * time.Minute
)

// SearchEngine defines the interface for flight search operations.
type SearchEngine interface {
	// Search queries all registered providers concurrently, merges and
	// deduplicates their offers, scores them against the request, and
	// returns the ranked result. Zero flights with a nil error is the
	// valid "no results" outcome; an error is returned only for an
	// invalid request or a caller-cancelled context.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error)
}

// ResultCache caches the merged, deduplicated flight list for a search
// key. Scores are recomputed on every search, so cached entries carry
// pre-score flights.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]domain.Flight, bool, error)
	Set(ctx context.Context, key string, flights []domain.Flight, ttl time.Duration) error
}

// Config contains tuning for the search engine.
type Config struct {
	// GlobalTimeout bounds the whole fan-out across all providers.
	GlobalTimeout time.Duration

	// ProviderTimeout bounds each individual provider call.
	ProviderTimeout time.Duration

	// CacheTTL is how long merged results stay cached. It should stay
	// below the shortest supplier offer validity window.
	CacheTTL time.Duration

	// Scoring holds the ranking rule weights and band boundaries.
	Scoring ScoringConfig

	// Filter holds the preference filter policy.
	Filter FilterPolicy
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		GlobalTimeout:   DefaultGlobalTimeout,
		ProviderTimeout: DefaultProviderTimeout,
		CacheTTL:        DefaultCacheTTL,
		Scoring:         DefaultScoringConfig(),
		Filter:          DefaultFilterPolicy(),
	}
}

// searchEngine implements SearchEngine using the Scatter-Gather pattern.
type searchEngine struct {
	registry *domain.ProviderRegistry
	cache    ResultCache
	cfg      Config
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewSearchEngine creates a SearchEngine. The cache, logger and metrics
// may be nil; config fields left at zero fall back to defaults.
func NewSearchEngine(registry *domain.ProviderRegistry, cache ResultCache, config *Config, log *logger.Logger, m *metrics.Metrics) SearchEngine {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
		if cfg.GlobalTimeout <= 0 {
			cfg.GlobalTimeout = DefaultGlobalTimeout
		}
		if cfg.ProviderTimeout <= 0 {
			cfg.ProviderTimeout = DefaultProviderTimeout
		}
		if cfg.CacheTTL <= 0 {
			cfg.CacheTTL = DefaultCacheTTL
		}
		if cfg.Filter.MaxResults <= 0 {
			cfg.Filter.MaxResults = DefaultMaxResults
		}
	}
	if log == nil {
		log = logger.Nop()
	}

	return &searchEngine{
		registry: registry,
		cache:    cache,
		cfg:      cfg,
		log:      log,
		metrics:  m,
	}
}

// Search implements SearchEngine.Search.
func (e *searchEngine) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
	startTime := time.Now()

	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.IncSearches()
	}

	searchID := uuid.NewString()
	log := e.log.WithSearchID(searchID)

	if flights, ok := e.cacheGet(ctx, req, log); ok {
		ranked := e.rankAndFilter(flights, req, log)
		return domain.NewSearchResult(searchID, ranked, domain.SearchMetadata{
			CacheHit:     true,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
		}), nil
	}

	providers := e.registry.GetAll()

	fanoutCtx, cancel := context.WithTimeout(ctx, e.cfg.GlobalTimeout)
	defer cancel()

	results := e.fanOut(fanoutCtx, providers, req)

	// A cancelled caller context aborts the search; an expired global
	// timeout does not, partial results are still returned.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	merged, metadata := e.collect(results, log)
	deduped := DeduplicateFlights(merged)

	e.cacheSet(ctx, req, deduped, log)

	ranked := e.rankAndFilter(deduped, req, log)

	metadata.SearchTimeMs = time.Since(startTime).Milliseconds()

	log.Info().
		Int("providers_queried", metadata.ProvidersQueried).
		Int("providers_failed", metadata.ProvidersFailed).
		Int("raw_offers", len(merged)).
		Int("results", len(ranked)).
		Int64("duration_ms", metadata.SearchTimeMs).
		Msg("search completed")

	return domain.NewSearchResult(searchID, ranked, metadata), nil
}

// fanOut launches one goroutine per provider and gathers every result.
func (e *searchEngine) fanOut(ctx context.Context, providers []domain.FlightProvider, req domain.SearchRequest) []domain.ProviderResult {
	resultsChan := make(chan domain.ProviderResult, len(providers))

	var wg sync.WaitGroup
	for _, provider := range providers {
		wg.Add(1)
		go func(p domain.FlightProvider) {
			defer wg.Done()
			e.queryProvider(ctx, p, req, resultsChan)
		}(provider)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([]domain.ProviderResult, 0, len(providers))
	for result := range resultsChan {
		results = append(results, result)
	}
	return results
}

// queryProvider queries a single provider with its own timeout and panic
// recovery, so one misbehaving adapter cannot take down the search.
func (e *searchEngine) queryProvider(ctx context.Context, provider domain.FlightProvider, req domain.SearchRequest, results chan<- domain.ProviderResult) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
	defer cancel()

	start := time.Now()
	providerName := provider.Name()

	defer func() {
		if r := recover(); r != nil {
			results <- domain.ProviderResult{
				Provider:   providerName,
				Error:      fmt.Errorf("provider panic: %v", r),
				DurationMs: time.Since(start).Milliseconds(),
			}
		}
	}()

	flights, err := provider.Search(ctx, req)

	results <- domain.ProviderResult{
		Provider:   providerName,
		Flights:    flights,
		Error:      err,
		DurationMs: time.Since(start).Milliseconds(),
	}
}

// collect merges the per-provider results into one flight list plus
// search metadata. A failed provider contributes nothing but its name;
// it never aborts the aggregation.
func (e *searchEngine) collect(results []domain.ProviderResult, log *logger.Logger) ([]domain.Flight, domain.SearchMetadata) {
	var merged []domain.Flight
	var failed []string

	for _, result := range results {
		if !result.IsSuccess() {
			failed = append(failed, result.Provider)
			log.Warn().
				Str("provider", result.Provider).
				Int64("duration_ms", result.DurationMs).
				Err(result.Error).
				Msg("provider search failed")
			continue
		}
		merged = append(merged, result.Flights...)
		log.Debug().
			Str("provider", result.Provider).
			Int("offers", len(result.Flights)).
			Int64("duration_ms", result.DurationMs).
			Msg("provider search succeeded")
	}

	// Gather order is nondeterministic; sort for stable metadata.
	sort.Strings(failed)

	return merged, domain.SearchMetadata{
		ProvidersQueried:   len(results),
		ProvidersSucceeded: len(results) - len(failed),
		ProvidersFailed:    len(failed),
		FailedProviders:    failed,
	}
}

// rankAndFilter scores, sorts, and applies the preference filters.
// Scores are recomputed here on every call, cached entries included.
func (e *searchEngine) rankAndFilter(flights []domain.Flight, req domain.SearchRequest, log *logger.Logger) []domain.Flight {
	scored := ScoreFlights(flights, req, e.cfg.Scoring)
	sorted := SortByScore(scored)
	return ApplyPreferences(sorted, req, e.cfg.Filter, log)
}

func (e *searchEngine) cacheGet(ctx context.Context, req domain.SearchRequest, log *logger.Logger) ([]domain.Flight, bool) {
	if e.cache == nil {
		return nil, false
	}

	flights, ok, err := e.cache.Get(ctx, req.CacheKey())
	if err != nil {
		log.Debug().Err(err).Msg("cache lookup failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	if e.metrics != nil {
		e.metrics.IncCacheHits()
	}
	log.Debug().Str("key", req.CacheKey()).Int("flights", len(flights)).Msg("cache hit")
	return flights, true
}

func (e *searchEngine) cacheSet(ctx context.Context, req domain.SearchRequest, flights []domain.Flight, log *logger.Logger) {
	if e.cache == nil || len(flights) == 0 {
		return
	}

	if err := e.cache.Set(ctx, req.CacheKey(), flights, e.cfg.CacheTTL); err != nil {
		log.Warn().Err(err).Msg("cache store failed")
	}
}

// Ensure searchEngine implements SearchEngine at compile time.
var _ SearchEngine = (*searchEngine)(nil)
