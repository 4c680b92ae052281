// Package ui renders vibe state in the terminal: colour swatches, state
// tables and the live preview.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Chrome colours. Vibe colours come from the controller, not from here.
var (
	LightForeground = lipgloss.Color("#101F38")
	LightMuted      = lipgloss.Color("#6b7280")
	LightBorder     = lipgloss.Color("#dce0e5")
	LightAccent     = lipgloss.Color("#4F6BED")

	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkMuted      = lipgloss.Color("#9aa4b2")
	DarkBorder     = lipgloss.Color("#2a3850")
	DarkAccent     = lipgloss.Color("#8BA4FF")

	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the chrome colour scheme
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Muted:      LightMuted,
		Border:     LightBorder,
		Accent:     LightAccent,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Accent:     DarkAccent,
		IsDark:     true,
	}
}

// DetectTheme picks dark mode from COLORFGBG or VIBE_DARK_MODE=1, otherwise
// light.
func DetectTheme() Theme {
	if os.Getenv("VIBE_DARK_MODE") == "1" {
		return DarkTheme()
	}
	// Format is usually "foreground;background".
	parts := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Alert   lipgloss.Style
	Panel   lipgloss.Style
	Prompt  lipgloss.Style
	Help    lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates styles for the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent),
		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(14),
		Value: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Alert: lipgloss.NewStyle().
			Bold(true).
			Foreground(Destructive),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent),
		Help: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),
		Warning: lipgloss.NewStyle().
			Foreground(Warning),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
