package edgar

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
)

// DefaultTTL bounds how long fetched facts are served without re-hitting
// SEC. Filings change at most quarterly; an hour keeps a browsing session
// snappy without staleness risk.
const DefaultTTL = time.Hour

// FactsCache is the explicit, time-windowed cache for fetched base-year
// facts, keyed by ticker. It sits outside the valuation core; the core
// never caches.
type FactsCache interface {
	Get(ctx context.Context, ticker string) (*baseyear.RawFacts, bool)
	Set(ctx context.Context, ticker string, facts *baseyear.RawFacts) error
}

func cacheKey(ticker string) string {
	return "facts:" + strings.ToUpper(ticker)
}

// RedisFactsCache backs the cache with Redis so multiple API instances
// share one fact window.
type RedisFactsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFactsCache connects to Redis at addr with the default TTL.
func NewRedisFactsCache(addr string) *RedisFactsCache {
	return &RedisFactsCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    DefaultTTL,
	}
}

func (c *RedisFactsCache) Get(ctx context.Context, ticker string) (*baseyear.RawFacts, bool) {
	raw, err := c.client.Get(ctx, cacheKey(ticker)).Result()
	if err != nil {
		return nil, false
	}
	var facts baseyear.RawFacts
	if err := json.Unmarshal([]byte(raw), &facts); err != nil {
		return nil, false
	}
	return &facts, true
}

func (c *RedisFactsCache) Set(ctx context.Context, ticker string, facts *baseyear.RawFacts) error {
	raw, err := json.Marshal(facts)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(ticker), raw, c.ttl).Err()
}

// MemoryFactsCache is the in-process fallback for runs without Redis.
type MemoryFactsCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	facts   baseyear.RawFacts
	expires time.Time
}

// NewMemoryFactsCache creates an in-memory cache with the default TTL.
func NewMemoryFactsCache() *MemoryFactsCache {
	return &MemoryFactsCache{
		entries: make(map[string]memoryEntry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
}

func (c *MemoryFactsCache) Get(ctx context.Context, ticker string) (*baseyear.RawFacts, bool) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(ticker)]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	facts := entry.facts
	return &facts, true
}

func (c *MemoryFactsCache) Set(ctx context.Context, ticker string, facts *baseyear.RawFacts) error {
	c.mu.Lock()
	c.entries[cacheKey(ticker)] = memoryEntry{
		facts:   *facts,
		expires: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}
