package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Config controls logger construction.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // text or json
	Service string
	Version string
}

// NewLogger returns a structured logger with sane defaults.
func NewLogger(cfg Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With(slog.String(FieldService, cfg.Service))
	}
	if cfg.Version != "" {
		logger = logger.With(slog.String(FieldVersion, cfg.Version))
	}
	return logger
}

type contextKey struct{}

// WithContext stores a logger in the context for downstream components.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the context's logger, the fallback, or nil.
func FromContext(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return fallback
}
