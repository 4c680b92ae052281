package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"vibecore/internal/vibe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, vibe.DefaultTiming(), cfg.Timing())
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vibe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("animation:\n  pulse_period: 400ms\nlogging:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, cfg.Timing().PulsePeriod)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, vibe.DefaultTiming().ThemeCrossfade, cfg.Timing().ThemeCrossfade)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vibe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("animation: [unclosed"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "vibe.yaml")
	cfg := DefaultConfig()
	cfg.Sentiment.Seed = 7
	cfg.Logging.Categories = map[string]bool{"store": false}
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, map[string]bool{"store": false}, got.Logging.Logger().Categories)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VIBE_LOG_LEVEL", "warn")
	t.Setenv("VIBE_DB", "/tmp/other.db")
	t.Setenv("VIBE_PULSE_PERIOD", "1s")
	t.Setenv("VIBE_SEED", "99")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/other.db", cfg.Store.DatabasePath)
	assert.Equal(t, time.Second, cfg.Timing().PulsePeriod)
	assert.Equal(t, int64(99), cfg.SentimentOptions().Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad duration", func(c *Config) { c.Animation.ThemeCrossfade = "soon" }},
		{"negative duration", func(c *Config) { c.Animation.OrbTransition = "-1s" }},
		{"zero pulse period", func(c *Config) { c.Animation.PulsePeriod = "0s" }},
		{"inverted pulse band", func(c *Config) { c.Animation.PulseLow, c.Animation.PulseHigh = 0.9, 0.1 }},
		{"pulse above one", func(c *Config) { c.Animation.PulseHigh = 1.5 }},
		{"booster out of range", func(c *Config) { c.Sentiment.BoosterDelta = 2 }},
		{"dampener negative", func(c *Config) { c.Sentiment.DampenerDelta = -0.1 }},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }},
		{"empty db path", func(c *Config) { c.Store.DatabasePath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestTiming_FallsBackOnGarbage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Animation.AudioAttack = "???"
	assert.Equal(t, vibe.DefaultTiming().AudioAttack, cfg.Timing().AudioAttack)
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vibe.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan *Config, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, path, func(c *Config, err error) {
			if err == nil {
				got <- c
			}
		}, WatchOptions{Debounce: 20 * time.Millisecond})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	cfg := DefaultConfig()
	cfg.Animation.PulsePeriod = "500ms"
	require.NoError(t, cfg.Save(path))

	select {
	case c := <-got:
		assert.Equal(t, 500*time.Millisecond, c.Timing().PulsePeriod)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload observed")
	}

	cancel()
	require.NoError(t, <-errc)
}

func TestWatch_ReportsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vibe.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, path, func(_ *Config, err error) {
			if err != nil {
				errs <- err
			}
		}, WatchOptions{Debounce: 20 * time.Millisecond})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrInvalidConfig)
	case <-time.After(3 * time.Second):
		t.Fatal("no error observed")
	}
	cancel()
	<-done
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	calls := make(chan struct{}, 10)
	for i := 0; i < 5; i++ {
		d.Debounce(func() { calls <- struct{}{} })
	}
	time.Sleep(150 * time.Millisecond)
	assert.Len(t, calls, 1)

	d.Debounce(func() { calls <- struct{}{} })
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	assert.Len(t, calls, 1)
}
