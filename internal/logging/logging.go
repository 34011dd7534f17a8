// Package logging builds the process logger.
//
// The core protocol packages never log. Commands and the inspection service
// receive a *slog.Logger built here, once, at process start.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Environment overrides, applied on top of the configured values.
const (
	EnvLogLevel  = "OCYPODE_LOG_LEVEL"
	EnvLogFormat = "OCYPODE_LOG_FORMAT"
)

// Config selects the level and handler of a logger.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

var (
	configureOnce sync.Once
	defaultLogger *slog.Logger
)

// Configure builds the logger from cfg and the environment and installs it
// as the slog default. Only the first call has an effect; later calls
// return the logger built by the first.
func Configure(cfg Config) *slog.Logger {
	configureOnce.Do(func() {
		defaultLogger = New(os.Stderr, cfg)
		slog.SetDefault(defaultLogger)
	})
	return defaultLogger
}

// New builds a logger writing to w. Environment overrides apply.
func New(w io.Writer, cfg Config) *slog.Logger {
	applyEnvOverrides(&cfg)

	level, _ := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		if _, ok := ParseLevel(v); ok {
			cfg.Level = v
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Format = v
	}
}

// ParseLevel maps a level name to a slog.Level. Unknown names yield
// slog.LevelInfo and false.
func ParseLevel(raw string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "trace":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
