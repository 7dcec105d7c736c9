package edgar

import (
	"context"
	"testing"
	"time"

	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/baseyear"
)

func TestMemoryFactsCache(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	c := NewMemoryFactsCache()
	c.now = func() time.Time { return clock }

	if _, ok := c.Get(ctx, "DEMO"); ok {
		t.Fatal("Expected a miss on an empty cache")
	}

	facts := &baseyear.RawFacts{Ticker: "DEMO", Revenue: 1000, EBIT: 200}
	if err := c.Set(ctx, "demo", facts); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Keys are case-insensitive on ticker
	got, ok := c.Get(ctx, "DEMO")
	if !ok {
		t.Fatal("Expected a hit")
	}
	if got.Revenue != 1000 {
		t.Errorf("Expected revenue 1000, got %f", got.Revenue)
	}

	// Mutating the returned copy must not poison the cache
	got.Revenue = 0
	again, _ := c.Get(ctx, "DEMO")
	if again.Revenue != 1000 {
		t.Error("Cache entry was mutated through the returned pointer")
	}

	// Entry expires after the TTL window
	clock = clock.Add(DefaultTTL + time.Minute)
	if _, ok := c.Get(ctx, "DEMO"); ok {
		t.Error("Expected expired entry to miss")
	}
}
