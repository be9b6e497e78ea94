package domain

// SearchResult represents the aggregated result of a flight search across
// all providers, after deduplication, scoring, filtering, and ranking.
// An empty Flights list is a valid result, not an error.
type SearchResult struct {
	// SearchID uniquely identifies this search execution
	SearchID string `json:"search_id"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`

	// Flights contains the ranked flight results
	Flights []Flight `json:"flights"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// TotalResults is the total number of flights returned
	TotalResults int `json:"total_results"`

	// ProvidersQueried is the number of providers that were queried
	ProvidersQueried int `json:"providers_queried"`

	// ProvidersSucceeded is the number of providers that returned results successfully
	ProvidersSucceeded int `json:"providers_succeeded"`

	// ProvidersFailed is the number of providers that failed or timed out
	ProvidersFailed int `json:"providers_failed"`

	// FailedProviders lists the names of providers that failed
	FailedProviders []string `json:"failed_providers,omitempty"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms"`

	// CacheHit indicates whether the merged supplier results came from cache
	CacheHit bool `json:"cache_hit"`
}

// NewSearchResult creates a SearchResult, normalizing a nil flight list to
// an empty one and filling in the total count.
func NewSearchResult(searchID string, flights []Flight, metadata SearchMetadata) *SearchResult {
	if flights == nil {
		flights = []Flight{}
	}
	metadata.TotalResults = len(flights)

	return &SearchResult{
		SearchID: searchID,
		Metadata: metadata,
		Flights:  flights,
	}
}

// ProviderResult represents the outcome of a single provider query.
// This is used internally for aggregating results.
type ProviderResult struct {
	// Provider is the name of the provider
	Provider string

	// Flights contains the flights returned by this provider
	Flights []Flight

	// Error is set if the provider query failed
	Error error

	// DurationMs is how long the provider query took
	DurationMs int64
}

// IsSuccess returns true if the provider query succeeded.
func (pr *ProviderResult) IsSuccess() bool {
	return pr.Error == nil
}
