package config

import "vibecore/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	Format     string          `yaml:"format"`               // json, console
	File       string          `yaml:"file,omitempty"`       // empty = stderr
	Categories map[string]bool `yaml:"categories,omitempty"` // per-category toggles
}

// Logger converts the section into the logging package's config.
func (c LoggingConfig) Logger() logging.Config {
	return logging.Config{
		Level:      c.Level,
		Format:     c.Format,
		File:       c.File,
		Categories: c.Categories,
	}
}
