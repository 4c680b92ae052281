package vibe

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartSpeakingPulse hands the audio level to a synthetic oscillation between
// Timing.PulseLow and Timing.PulseHigh with period Timing.PulsePeriod. It
// stands in for real amplitude while the assistant speaks. Calling it while a
// pulse is running does nothing.
func (c *Controller) StartSpeakingPulse() {
	c.pulseMu.Lock()
	defer c.pulseMu.Unlock()

	if c.pulseCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.pulseCancel = cancel
	c.pulseDone = done

	c.commit("start_speaking_pulse", func(s *State) {
		s.IsSpeakingPulseActive = true
	}, c.currentTiming().AudioAttack)

	go c.runPulse(ctx, done)
}

// StopSpeakingPulse cancels the oscillation, waits for it to exit and only
// then issues a single decay-to-zero target.
func (c *Controller) StopSpeakingPulse() {
	c.pulseMu.Lock()
	defer c.pulseMu.Unlock()
	c.stopPulseLocked()
}

// stopPulseLocked requires pulseMu.
func (c *Controller) stopPulseLocked() {
	if c.pulseCancel == nil {
		return
	}
	c.pulseCancel()
	<-c.pulseDone
	c.pulseCancel = nil
	c.pulseDone = nil

	c.commit("stop_speaking_pulse", func(s *State) {
		s.IsSpeakingPulseActive = false
		s.AudioLevel = 0
	}, c.currentTiming().PulseDecay)
}

func (c *Controller) runPulse(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	timing := c.currentTiming()
	half := timing.PulsePeriod / 2
	if half <= 0 {
		half = DefaultTiming().PulsePeriod / 2
	}
	ticker := time.NewTicker(half)
	defer ticker.Stop()

	high := true
	c.pulseStep(timing.PulseHigh, half)
	c.logger.Debug("speaking pulse started", zap.Duration("half_period", half))

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("speaking pulse stopped")
			return
		case <-ticker.C:
			high = !high
			v := timing.PulseLow
			if high {
				v = timing.PulseHigh
			}
			c.pulseStep(v, half)
		}
	}
}

// pulseStep bypasses SetAudioLevel, which is muted while the pulse runs.
func (c *Controller) pulseStep(v float64, d time.Duration) {
	v = clamp01(v)
	c.commit("pulse", func(s *State) {
		s.AudioLevel = v
	}, d)
}
