package vibe

import "time"

// Tween interpolates a scalar toward a target over a fixed duration.
// Retargeting mid-flight starts from the currently sampled value, never from
// the previous target, so rapid successive updates never jump.
type Tween struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

// NewTween returns a tween resting at v.
func NewTween(v float64) *Tween {
	return &Tween{from: v, to: v}
}

// Sample returns the interpolated value at now.
func (t *Tween) Sample(now time.Time) float64 {
	p := t.progress(now)
	if p >= 1 {
		return t.to
	}
	return t.from + (t.to-t.from)*p
}

// Retarget begins a new interpolation from the value at now toward to.
func (t *Tween) Retarget(to float64, d time.Duration, now time.Time) {
	t.from = t.Sample(now)
	t.to = to
	t.start = now
	t.duration = d
}

// Target returns the value the tween is heading to.
func (t *Tween) Target() float64 { return t.to }

// Done reports whether the tween has reached its target at now.
func (t *Tween) Done(now time.Time) bool { return t.progress(now) >= 1 }

func (t *Tween) progress(now time.Time) float64 {
	if t.duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.start)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= t.duration {
		return 1
	}
	return smoothstep(float64(elapsed) / float64(t.duration))
}

// ColorTween is the RGB counterpart of Tween.
type ColorTween struct {
	from     RGB
	to       RGB
	start    time.Time
	duration time.Duration
}

// NewColorTween returns a colour tween resting at c.
func NewColorTween(c RGB) *ColorTween {
	return &ColorTween{from: c, to: c}
}

// Sample returns the interpolated colour at now.
func (t *ColorTween) Sample(now time.Time) RGB {
	p := (&Tween{start: t.start, duration: t.duration}).progress(now)
	if p >= 1 {
		return t.to
	}
	return t.from.Lerp(t.to, p)
}

// Retarget begins a new crossfade from the colour at now toward to.
func (t *ColorTween) Retarget(to RGB, d time.Duration, now time.Time) {
	t.from = t.Sample(now)
	t.to = to
	t.start = now
	t.duration = d
}

// Target returns the colour the tween is heading to.
func (t *ColorTween) Target() RGB { return t.to }

func smoothstep(x float64) float64 {
	return x * x * (3 - 2*x)
}
