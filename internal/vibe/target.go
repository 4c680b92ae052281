package vibe

import (
	"fmt"
	"time"
)

// Channel names an animated signal on the rendering side.
type Channel int

const (
	ChannelColorA Channel = iota
	ChannelColorB
	ChannelComplexity
	ChannelOrbEnergy
	ChannelAudioLevel
	ChannelSpeaking
	ChannelBackground
)

func (c Channel) String() string {
	switch c {
	case ChannelColorA:
		return "color_a"
	case ChannelColorB:
		return "color_b"
	case ChannelComplexity:
		return "complexity"
	case ChannelOrbEnergy:
		return "orb_energy"
	case ChannelAudioLevel:
		return "audio_level"
	case ChannelSpeaking:
		return "speaking"
	case ChannelBackground:
		return "background"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Target asks the animation bridge to move Channel to a new value over
// Duration. Colour channels carry Color; every other channel carries Value.
type Target struct {
	Channel  Channel
	Value    float64
	Color    RGB
	Duration time.Duration
}

// Timing holds the transition durations the controller attaches to targets
// and the shape of the speaking pulse.
type Timing struct {
	ThemeCrossfade       time.Duration
	ComplexityTransition time.Duration
	OrbTransition        time.Duration
	AudioAttack          time.Duration
	PulsePeriod          time.Duration
	PulseLow             float64
	PulseHigh            float64
	PulseDecay           time.Duration
}

// DefaultTiming returns the stock transition timing.
func DefaultTiming() Timing {
	return Timing{
		ThemeCrossfade:       1200 * time.Millisecond,
		ComplexityTransition: 1500 * time.Millisecond,
		OrbTransition:        600 * time.Millisecond,
		AudioAttack:          80 * time.Millisecond,
		PulsePeriod:          250 * time.Millisecond,
		PulseLow:             0.3,
		PulseHigh:            0.8,
		PulseDecay:           300 * time.Millisecond,
	}
}

// diffTargets lists the targets needed to move a renderer from prev to next.
func diffTargets(prev, next State, t Timing, audioDur time.Duration) []Target {
	var out []Target
	if prev.ColorA != next.ColorA {
		out = append(out, Target{Channel: ChannelColorA, Color: next.ColorA, Duration: t.ThemeCrossfade})
	}
	if prev.ColorB != next.ColorB {
		out = append(out, Target{Channel: ChannelColorB, Color: next.ColorB, Duration: t.ThemeCrossfade})
	}
	if prev.ComplexityValue != next.ComplexityValue {
		out = append(out, Target{Channel: ChannelComplexity, Value: next.ComplexityValue, Duration: t.ComplexityTransition})
	}
	if prev.OrbEnergy != next.OrbEnergy {
		out = append(out, Target{Channel: ChannelOrbEnergy, Value: next.OrbEnergy.Value(), Duration: t.OrbTransition})
	}
	if prev.IsSpeakingPulseActive != next.IsSpeakingPulseActive {
		v := 0.0
		if next.IsSpeakingPulseActive {
			v = 1
		}
		out = append(out, Target{Channel: ChannelSpeaking, Value: v})
	}
	if prev.AudioLevel != next.AudioLevel {
		out = append(out, Target{Channel: ChannelAudioLevel, Value: next.AudioLevel, Duration: audioDur})
	}
	if prev.BackgroundIndex != next.BackgroundIndex {
		out = append(out, Target{Channel: ChannelBackground, Value: float64(next.BackgroundIndex), Duration: t.ThemeCrossfade})
	}
	return out
}
