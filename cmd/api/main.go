package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apivaluation "github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/api/valuation"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/edgar"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/market"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/core/store"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/logger"
	"github.com/trichyravis/DCF-Valuation-Model-US-10-K-Reports/pkg/trace"
)

func main() {
	// Load environment variables
	godotenv.Load()
	logger.Init()

	ctx := context.Background()

	if err := trace.Init(); err != nil {
		slog.Warn("tracing disabled", "error", err)
	}
	defer trace.Shutdown(ctx)

	// Market constants: file overrides compiled-in defaults
	md, err := market.Load("config/market.hjson")
	if err != nil {
		slog.Warn("using default market constants", "error", err)
	}

	// Facts cache: Redis when configured, in-process otherwise
	var cache edgar.FactsCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = edgar.NewRedisFactsCache(addr)
		slog.Info("using redis facts cache", "addr", addr)
	} else {
		cache = edgar.NewMemoryFactsCache()
		slog.Info("using in-memory facts cache")
	}

	// Database is optional: runs are persisted only when configured
	var runs apivaluation.RunStore
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			slog.Warn("database unavailable, runs will not be persisted", "error", err)
		} else {
			runs = store.NewValuationRepo()
			defer store.Close()
		}
	}

	fetcher := edgar.NewFetcher(cache)
	handler := apivaluation.NewHandler(fetcher, md, runs)

	http.HandleFunc("/api/valuation/report", handler.HandleReport)
	http.HandleFunc("/api/valuation/runs", handler.HandleRuns)
	http.HandleFunc("/api/health", handler.HandleHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	slog.Info("API server starting", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		slog.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
