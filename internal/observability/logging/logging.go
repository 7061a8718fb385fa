package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Config carries the logger knobs the environment provides.
type Config struct {
	ServiceName string
	Environment string
	Level       string
}

// NewLogger builds the process-wide JSON logger. Every line carries the
// service and env attrs so aggregated logs stay filterable; outside prod the
// handler also records the call site.
func NewLogger(cfg Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.Environment != "prod",
	})
	return slog.New(handler).With(
		slog.String("service", cfg.ServiceName),
		slog.String("env", cfg.Environment),
	)
}

// ParseLevel maps a LOG_LEVEL value onto a slog level. Unknown values fall
// back to info rather than erroring out at startup.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
