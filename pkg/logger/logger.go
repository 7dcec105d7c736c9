// Package logger configures the process-wide structured logger from
// environment variables. Core valuation packages never log; surfaces do.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init sets the default slog logger. LOG_LEVEL selects the level
// (DEBUG/INFO/WARN/ERROR, default INFO); LOG_FORMAT selects json or text
// output (default json).
func Init() {
	level := parseLevel(getEnv("LOG_LEVEL", "INFO"))
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(getEnv("LOG_FORMAT", "json"), "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
