// Package logging builds the zap loggers used across vibecore. Each
// subsystem logs through a named child of one base logger, and individual
// categories can be switched off in config.
package logging

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryController Category = "controller" // Vibe state changes and pulse
	CategorySentiment  Category = "sentiment"  // Question classification
	CategorySync       Category = "sync"       // Demo store -> controller propagation
	CategoryDemo       Category = "demo"       // Demo phase machine
	CategoryStore      Category = "store"      // Snapshot persistence
	CategoryConfig     Category = "config"     // Config load, save and reload
	CategoryCLI        Category = "cli"        // Command wiring
)

// AllCategories lists every declared category.
func AllCategories() []Category {
	return []Category{
		CategoryController,
		CategorySentiment,
		CategorySync,
		CategoryDemo,
		CategoryStore,
		CategoryConfig,
		CategoryCLI,
	}
}

// Config mirrors config.LoggingConfig to avoid an import cycle.
type Config struct {
	Level      string          // debug, info, warn or error
	Format     string          // json or console
	File       string          // optional output path; empty means stderr
	Categories map[string]bool // absent categories are enabled
}

// ParseLevel maps a level name to a zap level. Unknown names are an error.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// New builds the base logger. verbose forces debug level.
func New(cfg Config, verbose bool) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	var zc zap.Config
	switch cfg.Format {
	case "", "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Registry hands out per-category child loggers.
type Registry struct {
	base     *zap.Logger
	disabled map[Category]bool
}

// NewRegistry wraps base. A nil base logs nothing.
func NewRegistry(base *zap.Logger, cfg Config) *Registry {
	if base == nil {
		base = zap.NewNop()
	}
	r := &Registry{base: base, disabled: make(map[Category]bool)}
	for name, enabled := range cfg.Categories {
		if !enabled {
			r.disabled[Category(name)] = true
		}
	}
	return r
}

// Get returns the logger for category, or a no-op logger if the category
// is disabled.
func (r *Registry) Get(category Category) *zap.Logger {
	if r == nil || r.disabled[category] {
		return zap.NewNop()
	}
	return For(r.base, category)
}

// Base returns the underlying logger.
func (r *Registry) Base() *zap.Logger { return r.base }

// For returns base named after category.
func For(base *zap.Logger, category Category) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(string(category))
}

// Timer helps measure operation duration
type Timer struct {
	logger *zap.Logger
	op     string
	start  time.Time
}

// StartTimer begins timing an operation
func StartTimer(logger *zap.Logger, operation string) *Timer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Timer{logger: logger, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs a warning if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		t.logger.Warn("operation slow",
			zap.String("op", t.op),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", threshold))
	} else {
		t.logger.Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
