package sentiment

import (
	"vibecore/internal/shaders"
	"vibecore/internal/vibe"
)

// RenderConfig is everything a renderer needs to draw the background a
// Result recommends.
type RenderConfig struct {
	Theme           vibe.ColorTheme
	Complexity      vibe.Complexity
	ComplexityValue float64
	ShaderID        int
	ShaderName      string
	ColorA          vibe.RGB
	ColorB          vibe.RGB
	BackgroundIndex int
	// Address is the index in the 750-configuration space at calm energy, or
	// -1 for alert, which renders as an overlay.
	Address int
}

// ToRenderConfig combines a Result with a background layout. Out-of-range
// background indices wrap.
func ToRenderConfig(r Result, background int) RenderConfig {
	p := vibe.PaletteFor(r.Theme)
	sh, _ := shaders.Lookup(r.ShaderID)

	s := vibe.DefaultState()
	s.ColorTheme = r.Theme
	s.Complexity = r.Complexity
	s.BackgroundIndex = vibe.NormalizeBackground(background)
	addr, ok := vibe.Address(s)
	if !ok {
		addr = -1
	}

	return RenderConfig{
		Theme:           r.Theme,
		Complexity:      r.Complexity,
		ComplexityValue: r.ComplexityValue,
		ShaderID:        r.ShaderID,
		ShaderName:      sh.Name,
		ColorA:          p.A,
		ColorB:          p.B,
		BackgroundIndex: s.BackgroundIndex,
		Address:         addr,
	}
}

// VibeSetter is the part of vibe.Controller a sentiment result drives.
type VibeSetter interface {
	SetVibe(theme vibe.ColorTheme, level vibe.Complexity)
}

// Apply pushes a result's theme and complexity into the controller as one
// change.
func Apply(ctrl VibeSetter, r Result) {
	ctrl.SetVibe(r.Theme, r.Complexity)
}
