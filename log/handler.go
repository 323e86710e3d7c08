// Package log provides structured logging (slog) for the plugin.
// Records go to stderr as JSON; stdout is reserved for the result document.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// HandlerOption configures the handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a JSON slog.Handler writing to w.
func NewHandler(w io.Writer, opts ...HandlerOption) slog.Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     cfg.level,
		AddSource: cfg.addSource,
	})
}

// NewLogger creates a logger writing JSON records to w.
func NewLogger(w io.Writer, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewHandler(w, opts...))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
