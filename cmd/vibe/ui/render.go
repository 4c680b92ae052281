package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vibecore/internal/sentiment"
	"vibecore/internal/vibe"
)

// Swatch renders a block of width cells filled with c.
func Swatch(c vibe.RGB, width int) string {
	if width <= 0 {
		width = 1
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", width))
}

// Gradient renders width cells blending from a to b.
func Gradient(a, b vibe.RGB, width int) string {
	if width <= 1 {
		return Swatch(a, 1)
	}
	var sb strings.Builder
	for i := 0; i < width; i++ {
		t := float64(i) / float64(width-1)
		sb.WriteString(Swatch(a.Lerp(b, t), 1))
	}
	return sb.String()
}

// Meter renders v in [0,1] as a bar of width cells.
func Meter(v float64, width int) string {
	if width <= 0 {
		return ""
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(v*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (s Styles) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.Label.Render(label), s.Value.Render(value))
}

// State renders a controller state as a labelled panel.
func (s Styles) State(st vibe.State) string {
	theme := st.ColorTheme.String()
	if st.ColorTheme == vibe.ThemeAlert {
		theme = s.Alert.Render(theme)
	}
	addr := "overlay"
	if i, ok := vibe.Address(st); ok {
		addr = fmt.Sprintf("%d / %d", i, vibe.AddressCount)
	}
	lines := []string{
		s.row("party", fmt.Sprintf("%s (%s)", st.ActiveParty, st.ActiveMode)),
		s.row("theme", theme),
		s.row("colors", Gradient(st.ColorA, st.ColorB, 24)+" "+s.Muted.Render(st.ColorA.Hex()+" → "+st.ColorB.Hex())),
		s.row("complexity", fmt.Sprintf("%s %s %.2f", st.Complexity, Meter(st.ComplexityValue, 10), st.ComplexityValue)),
		s.row("energy", fmt.Sprintf("%s %s", st.OrbEnergy, Meter(st.OrbEnergy.Value(), 10))),
		s.row("audio", fmt.Sprintf("%s %.2f", Meter(st.AudioLevel, 10), st.AudioLevel)),
		s.row("speaking", fmt.Sprintf("%t", st.IsSpeakingPulseActive)),
		s.row("coverage", fmt.Sprintf("%.0f%%", st.CoveragePercent)),
		s.row("background", fmt.Sprintf("%d", st.BackgroundIndex)),
		s.row("address", addr),
	}
	return s.Panel.Render(strings.Join(lines, "\n"))
}

// Uniforms renders a sampled frame on one line.
func (s Styles) Uniforms(u vibe.Uniforms) string {
	return fmt.Sprintf("%s  complexity %s  energy %s  audio %s",
		Gradient(u.ColorA, u.ColorB, 16),
		Meter(u.ComplexityValue, 8),
		Meter(u.OrbEnergy, 8),
		Meter(u.AudioLevel, 8))
}

// Result renders a classifier result with its render config.
func (s Styles) Result(text string, r sentiment.Result, cfg sentiment.RenderConfig) string {
	theme := r.Theme.String()
	if r.Theme == vibe.ThemeAlert {
		theme = s.Alert.Render(theme)
	}
	addr := "overlay"
	if cfg.Address >= 0 {
		addr = fmt.Sprintf("%d", cfg.Address)
	}
	lines := []string{
		s.Title.Render(text),
		s.row("theme", theme),
		s.row("colors", Gradient(cfg.ColorA, cfg.ColorB, 24)),
		s.row("complexity", fmt.Sprintf("%s %.2f", r.Complexity, r.ComplexityValue)),
		s.row("shader", fmt.Sprintf("%d %s", cfg.ShaderID, cfg.ShaderName)),
		s.row("confidence", fmt.Sprintf("%.2f", r.Confidence)),
		s.row("address", addr),
	}
	return s.Panel.Render(strings.Join(lines, "\n"))
}
