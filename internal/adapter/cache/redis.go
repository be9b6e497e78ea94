// Package cache provides the Redis-backed result cache used by the
// search engine. Entries hold the merged, deduplicated flight list for
// a search key; scores are recomputed on every read, so entries are
// stored pre-score.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edsonnoyola/Biajez-sub000/internal/domain"
)

// DefaultTTL bounds how long a cached result may be served. It is kept
// below the shortest supplier offer validity so cached offers remain
// bookable.
const DefaultTTL = 2 * time.Minute

// RedisClient is the subset of redis.Client the cache depends on.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// FlightCache stores flight lists in Redis as JSON blobs keyed by the
// deterministic search key.
type FlightCache struct {
	client RedisClient
}

// NewFlightCache creates a FlightCache on top of the given client.
func NewFlightCache(client RedisClient) *FlightCache {
	return &FlightCache{client: client}
}

// Get returns the cached flights for key. A missing key is not an
// error; it is reported through the boolean.
func (c *FlightCache) Get(ctx context.Context, key string) ([]domain.Flight, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		// A corrupt entry reads as an error so the caller falls
		// through to the providers and overwrites it.
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}

	return flights, true, nil
}

// Set stores flights under key for ttl. A non-positive ttl falls back
// to DefaultTTL.
func (c *FlightCache) Set(ctx context.Context, key string, flights []domain.Flight, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(flights)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	return nil
}
