// Package vibe holds the four-axis visual state of the app (party/mode,
// colour theme, complexity, orb energy) and reconciles every trigger that
// wants to change it into a single consistent state.
//
// The controller never animates. Each effective change is published as a set
// of Targets (value + duration) to subscribers; an animation bridge such as
// Animator interpolates them. Because the controller owns no in-flight
// animation state, setters may be called again at any moment and the bridge
// retargets from wherever it currently is.
package vibe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options configures a Controller.
type Options struct {
	Timing Timing
	Logger *zap.Logger
}

// Controller is the canonical vibe state store. Build one at startup and pass
// it to every collaborator that needs it.
type Controller struct {
	mu       sync.Mutex
	state    State
	revision uint64
	timing   Timing
	logger   *zap.Logger
	subs     []subscriber
	nextSub  uint64

	// pulseMu serialises Start/StopSpeakingPulse so that at most one
	// oscillation goroutine exists.
	pulseMu     sync.Mutex
	pulseCancel context.CancelFunc
	pulseDone   chan struct{}
}

type subscriber struct {
	id uint64
	fn func(Target)
}

// NewController returns a controller at DefaultState.
func NewController(opts Options) *Controller {
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		state:  DefaultState(),
		timing: opts.Timing,
		logger: opts.Logger,
	}
}

// Subscribe registers fn to receive every target the controller emits. fn is
// called synchronously, outside the controller lock, on the goroutine that
// caused the change (the pulse goroutine for pulse targets). fn must not call
// StartSpeakingPulse or StopSpeakingPulse.
func (c *Controller) Subscribe(fn func(Target)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			for i, sub := range c.subs {
				if sub.id == id {
					c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
					break
				}
			}
			c.mu.Unlock()
		})
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Revision increases by one on every effective state change.
func (c *Controller) Revision() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision
}

// Uniforms returns the shader inputs derived from the current logical state.
func (c *Controller) Uniforms() Uniforms {
	s := c.State()
	return Uniforms{
		ColorA:          s.ColorA,
		ColorB:          s.ColorB,
		ComplexityValue: s.ComplexityValue,
		AudioLevel:      s.AudioLevel,
		OrbEnergy:       s.OrbEnergy.Value(),
		Speaking:        s.IsSpeakingPulseActive,
	}
}

// SetActiveParty makes p the driving party. If the current mode belongs to
// the other party it falls back to p's default mode.
func (c *Controller) SetActiveParty(p Party) {
	if !p.IsValid() {
		panic(fmt.Sprintf("vibe: invalid Party %d", int(p)))
	}
	c.commit("set_active_party", func(s *State) {
		s.ActiveParty = p
		if s.ActiveMode == nil || s.ActiveMode.Party() != p {
			s.ActiveMode = defaultMode(p)
		}
	}, c.currentTiming().AudioAttack)
}

// SetUserMode sets the user's mode and makes the user active.
func (c *Controller) SetUserMode(m UserMode) {
	if !m.IsValid() {
		panic(fmt.Sprintf("vibe: invalid UserMode %d", int(m)))
	}
	c.setMode(m)
}

// SetAbbyMode sets the assistant's mode and makes the assistant active.
func (c *Controller) SetAbbyMode(m AbbyMode) {
	if !m.IsValid() {
		panic(fmt.Sprintf("vibe: invalid AbbyMode %d", int(m)))
	}
	c.setMode(m)
}

func (c *Controller) setMode(m Mode) {
	c.commit("set_mode", func(s *State) {
		s.ActiveParty = m.Party()
		s.ActiveMode = m
	}, c.currentTiming().AudioAttack)
}

// SetColorTheme retargets the palette.
func (c *Controller) SetColorTheme(t ColorTheme) {
	mustTheme(t)
	c.commit("set_color_theme", func(s *State) {
		setTheme(s, t)
	}, c.currentTiming().AudioAttack)
}

// SetComplexity retargets the complexity level.
func (c *Controller) SetComplexity(level Complexity) {
	mustComplexity(level)
	c.commit("set_complexity", func(s *State) {
		setComplexity(s, level)
	}, c.currentTiming().AudioAttack)
}

// SetVibe sets theme and complexity together as a single change.
func (c *Controller) SetVibe(t ColorTheme, level Complexity) {
	mustTheme(t)
	mustComplexity(level)
	c.commit("set_vibe", func(s *State) {
		setTheme(s, t)
		setComplexity(s, level)
	}, c.currentTiming().AudioAttack)
}

// SetOrbEnergy retargets the orb.
func (c *Controller) SetOrbEnergy(e OrbEnergy) {
	mustEnergy(e)
	c.commit("set_orb_energy", func(s *State) {
		s.OrbEnergy = e
	}, c.currentTiming().AudioAttack)
}

// SetFromAppState snaps theme, complexity and energy to the app state's
// preset.
func (c *Controller) SetFromAppState(a AppState) {
	p := PresetFor(a)
	c.commit("set_from_app_state", func(s *State) {
		setTheme(s, p.Theme)
		setComplexity(s, p.Complexity)
		s.OrbEnergy = p.Energy
	}, c.currentTiming().AudioAttack)
}

// SetFromResponse rewards an answer: better answers never produce a lower
// complexity or energy than worse ones from the same starting state.
func (c *Controller) SetFromResponse(q ResponseQuality) {
	r := RewardFor(q)
	c.commit("set_from_response", func(s *State) {
		level := s.Complexity + Complexity(r.ComplexityStep)
		if level > ComplexityPaisley {
			level = ComplexityPaisley
		}
		setComplexity(s, level)
		if s.OrbEnergy < r.EnergyFloor {
			s.OrbEnergy = r.EnergyFloor
		}
	}, c.currentTiming().AudioAttack)
}

// SetCoveragePercent records interview coverage and moves the theme to the
// matching band. pct is clamped to [0,100]. Repeating a call is a no-op.
func (c *Controller) SetCoveragePercent(pct float64) {
	pct = clamp(pct, 0, 100)
	c.commit("set_coverage_percent", func(s *State) {
		s.CoveragePercent = pct
		setTheme(s, ThemeForCoverage(pct))
	}, c.currentTiming().AudioAttack)
}

// RecordCoveragePercent stores interview coverage without touching the
// theme. pct is clamped to [0,100].
func (c *Controller) RecordCoveragePercent(pct float64) {
	pct = clamp(pct, 0, 100)
	c.commit("record_coverage_percent", func(s *State) {
		s.CoveragePercent = pct
	}, c.currentTiming().AudioAttack)
}

// SetFromPhase applies the app state's preset and records coverage in a
// single revision. When coverageDriven is set the coverage band replaces the
// preset theme.
func (c *Controller) SetFromPhase(a AppState, coverage float64, coverageDriven bool) {
	p := PresetFor(a)
	coverage = clamp(coverage, 0, 100)
	c.commit("set_from_phase", func(s *State) {
		setTheme(s, p.Theme)
		setComplexity(s, p.Complexity)
		s.OrbEnergy = p.Energy
		s.CoveragePercent = coverage
		if coverageDriven {
			setTheme(s, ThemeForCoverage(coverage))
		}
	}, c.currentTiming().AudioAttack)
}

// SetTiming replaces the transition durations used for later targets. A zero
// Timing restores DefaultTiming. A running pulse keeps its period until it
// is restarted.
func (c *Controller) SetTiming(t Timing) {
	if t == (Timing{}) {
		t = DefaultTiming()
	}
	c.mu.Lock()
	c.timing = t
	c.mu.Unlock()
	c.logger.Debug("timing updated", zap.Duration("theme_crossfade", t.ThemeCrossfade))
}

// SetAudioLevel feeds a real microphone/playback amplitude. It is ignored
// while the speaking pulse owns the signal.
func (c *Controller) SetAudioLevel(level float64) {
	level = clamp01(level)
	c.commit("set_audio_level", func(s *State) {
		if s.IsSpeakingPulseActive {
			return
		}
		s.AudioLevel = level
	}, c.currentTiming().AudioAttack)
}

// SetBackgroundIndex selects one of BackgroundCount layouts; any integer is
// reduced into range.
func (c *Controller) SetBackgroundIndex(i int) {
	i = NormalizeBackground(i)
	c.commit("set_background_index", func(s *State) {
		s.BackgroundIndex = i
	}, c.currentTiming().AudioAttack)
}

// Reset stops the pulse and returns to DefaultState.
func (c *Controller) Reset() {
	c.pulseMu.Lock()
	c.stopPulseLocked()
	c.pulseMu.Unlock()

	c.commit("reset", func(s *State) {
		*s = DefaultState()
	}, c.currentTiming().PulseDecay)
}

// Close releases the pulse goroutine, if any.
func (c *Controller) Close() {
	c.StopSpeakingPulse()
}

// commit applies fn to a copy of the state. If the result differs from the
// current state it is stored, the revision advances and the resulting targets
// are published. It reports whether anything changed.
func (c *Controller) commit(op string, fn func(*State), audioDur time.Duration) bool {
	c.mu.Lock()
	prev := c.state
	next := prev
	fn(&next)
	if next == prev {
		c.mu.Unlock()
		return false
	}
	c.state = next
	c.revision++
	rev := c.revision
	timing := c.timing
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	targets := diffTargets(prev, next, timing, audioDur)
	if op != "pulse" {
		c.logger.Debug("vibe changed",
			zap.String("op", op),
			zap.Uint64("revision", rev),
			zap.Stringer("theme", next.ColorTheme),
			zap.Stringer("complexity", next.Complexity),
			zap.Stringer("energy", next.OrbEnergy),
			zap.Int("targets", len(targets)))
	}
	for _, tg := range targets {
		for _, sub := range subs {
			sub.fn(tg)
		}
	}
	return true
}

func (c *Controller) currentTiming() Timing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timing
}

func setTheme(s *State, t ColorTheme) {
	p := themePalettes[t]
	s.ColorTheme = t
	s.ColorA = p.A
	s.ColorB = p.B
}

func setComplexity(s *State, level Complexity) {
	s.Complexity = level
	s.ComplexityValue = level.Value()
}
