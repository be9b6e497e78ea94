package domain

import (
	"context"
	"sync"
)

// FlightProvider is the interface every supplier adapter implements.
// Implementations translate the supplier's wire format into normalized
// Flight values and classify failures with the ProviderError helpers.
type FlightProvider interface {
	// Name returns the unique provider name (e.g., "duffel").
	// The name is used in offer identifiers, logs, and metrics labels.
	Name() string

	// Search performs a flight search against the supplier.
	// A supplier that cannot serve the request (for example, multi-city
	// on a supplier without multi-city support) returns no flights and
	// no error.
	Search(ctx context.Context, req SearchRequest) ([]Flight, error)
}

// ProviderRegistry holds the set of registered providers.
// It is safe for concurrent use.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]FlightProvider
	order     []string
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]FlightProvider),
	}
}

// Register adds a provider to the registry. Registering a provider with a
// name that already exists replaces the previous one. Nil providers are
// ignored.
func (r *ProviderRegistry) Register(provider FlightProvider) {
	if provider == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.Name()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = provider
}

// Get returns the provider with the given name, or nil if not registered.
func (r *ProviderRegistry) Get(name string) FlightProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.providers[name]
}

// GetAll returns all registered providers in registration order.
func (r *ProviderRegistry) GetAll() []FlightProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]FlightProvider, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.providers[name])
	}
	return all
}

// Names returns the names of all registered providers in registration order.
func (r *ProviderRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}
