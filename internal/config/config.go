package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"vibecore/internal/logging"
	"vibecore/internal/sentiment"
	"vibecore/internal/vibe"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultPath is where the CLI looks when --config is not given.
const DefaultPath = "vibe.yaml"

// Config holds all vibecore configuration.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Logging   LoggingConfig   `yaml:"logging"`
	Store     StoreConfig     `yaml:"store"`
}

// AnimationConfig holds transition durations as duration strings and the
// speaking pulse band.
type AnimationConfig struct {
	ThemeCrossfade       string  `yaml:"theme_crossfade"`
	ComplexityTransition string  `yaml:"complexity_transition"`
	OrbTransition        string  `yaml:"orb_transition"`
	AudioAttack          string  `yaml:"audio_attack"`
	PulsePeriod          string  `yaml:"pulse_period"`
	PulseLow             float64 `yaml:"pulse_low"`
	PulseHigh            float64 `yaml:"pulse_high"`
	PulseDecay           string  `yaml:"pulse_decay"`
}

// SentimentConfig tunes the question classifier.
type SentimentConfig struct {
	BoosterDelta  float64 `yaml:"booster_delta"`
	DampenerDelta float64 `yaml:"dampener_delta"`
	Seed          int64   `yaml:"seed"` // 0 = time-based shader choice
}

// StoreConfig configures snapshot persistence.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	t := vibe.DefaultTiming()
	s := sentiment.DefaultOptions()
	return &Config{
		Animation: AnimationConfig{
			ThemeCrossfade:       t.ThemeCrossfade.String(),
			ComplexityTransition: t.ComplexityTransition.String(),
			OrbTransition:        t.OrbTransition.String(),
			AudioAttack:          t.AudioAttack.String(),
			PulsePeriod:          t.PulsePeriod.String(),
			PulseLow:             t.PulseLow,
			PulseHigh:            t.PulseHigh,
			PulseDecay:           t.PulseDecay.String(),
		},
		Sentiment: SentimentConfig{
			BoosterDelta:  s.BoosterDelta,
			DampenerDelta: s.DampenerDelta,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Store: StoreConfig{
			DatabasePath: "data/vibe.db",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VIBE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VIBE_DB"); v != "" {
		c.Store.DatabasePath = v
	}
	if v := os.Getenv("VIBE_PULSE_PERIOD"); v != "" {
		c.Animation.PulsePeriod = v
	}
	if v := os.Getenv("VIBE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Sentiment.Seed = n
		}
	}
}

// Validate reports the first problem found. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	durations := []struct {
		name, value string
	}{
		{"animation.theme_crossfade", c.Animation.ThemeCrossfade},
		{"animation.complexity_transition", c.Animation.ComplexityTransition},
		{"animation.orb_transition", c.Animation.OrbTransition},
		{"animation.audio_attack", c.Animation.AudioAttack},
		{"animation.pulse_period", c.Animation.PulsePeriod},
		{"animation.pulse_decay", c.Animation.PulseDecay},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, d.name, err)
		}
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, d.name)
		}
	}
	if p, _ := time.ParseDuration(c.Animation.PulsePeriod); p <= 0 {
		return fmt.Errorf("%w: animation.pulse_period must be positive", ErrInvalidConfig)
	}

	a := c.Animation
	if a.PulseLow < 0 || a.PulseHigh > 1 || a.PulseLow >= a.PulseHigh {
		return fmt.Errorf("%w: pulse band [%g, %g] must satisfy 0 <= low < high <= 1",
			ErrInvalidConfig, a.PulseLow, a.PulseHigh)
	}

	if c.Sentiment.BoosterDelta < 0 || c.Sentiment.BoosterDelta > 1 {
		return fmt.Errorf("%w: sentiment.booster_delta must be in [0,1]", ErrInvalidConfig)
	}
	if c.Sentiment.DampenerDelta < 0 || c.Sentiment.DampenerDelta > 1 {
		return fmt.Errorf("%w: sentiment.dampener_delta must be in [0,1]", ErrInvalidConfig)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: logging.format %q (valid: json, console)", ErrInvalidConfig, c.Logging.Format)
	}

	if c.Store.DatabasePath == "" {
		return fmt.Errorf("%w: store.database_path is empty", ErrInvalidConfig)
	}
	return nil
}

// Timing returns the animation settings as controller timing. Unparseable
// durations fall back to the defaults.
func (c *Config) Timing() vibe.Timing {
	def := vibe.DefaultTiming()
	return vibe.Timing{
		ThemeCrossfade:       parseDuration(c.Animation.ThemeCrossfade, def.ThemeCrossfade),
		ComplexityTransition: parseDuration(c.Animation.ComplexityTransition, def.ComplexityTransition),
		OrbTransition:        parseDuration(c.Animation.OrbTransition, def.OrbTransition),
		AudioAttack:          parseDuration(c.Animation.AudioAttack, def.AudioAttack),
		PulsePeriod:          parseDuration(c.Animation.PulsePeriod, def.PulsePeriod),
		PulseLow:             c.Animation.PulseLow,
		PulseHigh:            c.Animation.PulseHigh,
		PulseDecay:           parseDuration(c.Animation.PulseDecay, def.PulseDecay),
	}
}

// SentimentOptions returns classifier options for this config.
func (c *Config) SentimentOptions() sentiment.Options {
	return sentiment.Options{
		BoosterDelta:  c.Sentiment.BoosterDelta,
		DampenerDelta: c.Sentiment.DampenerDelta,
		Seed:          c.Sentiment.Seed,
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
