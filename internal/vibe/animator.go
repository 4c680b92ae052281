package vibe

import (
	"sync"
	"time"
)

// Animator is a reference animation bridge. It turns the controller's target
// stream into per-frame uniforms, one tween per channel. Renderers that use
// their own animation system only need to honour the same contract: every
// target retargets from the current sampled value.
type Animator struct {
	mu         sync.Mutex
	now        func() time.Time
	colorA     *ColorTween
	colorB     *ColorTween
	complexity *Tween
	audio      *Tween
	orb        *Tween
	speaking   bool
}

// NewAnimator returns an animator resting at the given state. A nil clock
// means time.Now.
func NewAnimator(s State, now func() time.Time) *Animator {
	if now == nil {
		now = time.Now
	}
	return &Animator{
		now:        now,
		colorA:     NewColorTween(s.ColorA),
		colorB:     NewColorTween(s.ColorB),
		complexity: NewTween(s.ComplexityValue),
		audio:      NewTween(s.AudioLevel),
		orb:        NewTween(s.OrbEnergy.Value()),
		speaking:   s.IsSpeakingPulseActive,
	}
}

// Apply retargets the channel named by tg. It is safe to pass as a
// Controller subscriber.
func (a *Animator) Apply(tg Target) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	switch tg.Channel {
	case ChannelColorA:
		a.colorA.Retarget(tg.Color, tg.Duration, now)
	case ChannelColorB:
		a.colorB.Retarget(tg.Color, tg.Duration, now)
	case ChannelComplexity:
		a.complexity.Retarget(tg.Value, tg.Duration, now)
	case ChannelAudioLevel:
		a.audio.Retarget(tg.Value, tg.Duration, now)
	case ChannelOrbEnergy:
		a.orb.Retarget(tg.Value, tg.Duration, now)
	case ChannelSpeaking:
		a.speaking = tg.Value > 0
	}
}

// Sample returns the interpolated uniforms at now.
func (a *Animator) Sample(now time.Time) Uniforms {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Uniforms{
		ColorA:          a.colorA.Sample(now),
		ColorB:          a.colorB.Sample(now),
		ComplexityValue: a.complexity.Sample(now),
		AudioLevel:      a.audio.Sample(now),
		OrbEnergy:       a.orb.Sample(now),
		Speaking:        a.speaking,
	}
}
