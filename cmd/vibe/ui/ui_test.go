package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibecore/internal/sentiment"
	"vibecore/internal/vibe"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("VIBE_DARK_MODE", "1")
	assert.True(t, DetectTheme().IsDark)

	t.Setenv("VIBE_DARK_MODE", "")
	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, DetectTheme().IsDark)
}

func TestMeter(t *testing.T) {
	assert.Equal(t, "░░░░", Meter(0, 4))
	assert.Equal(t, "██░░", Meter(0.5, 4))
	assert.Equal(t, "████", Meter(3, 4))
	assert.Empty(t, Meter(1, 0))
}

func TestStyles_StateMentionsAddress(t *testing.T) {
	s := NewStyles(LightTheme())
	out := s.State(vibe.DefaultState())
	assert.Contains(t, out, "deep")
	assert.Contains(t, out, "/ 750")

	alert := vibe.DefaultState()
	alert.ColorTheme = vibe.ThemeAlert
	assert.Contains(t, s.State(alert), "overlay")
}

type fakeStepper struct{ calls int }

func (f *fakeStepper) Advance() bool { f.calls++; return f.calls < 2 }

type fixedSampler struct{ u vibe.Uniforms }

func (f fixedSampler) Sample(time.Time) vibe.Uniforms { return f.u }

func newTestModel(t *testing.T) (PreviewModel, *vibe.Controller, *fakeStepper) {
	t.Helper()
	ctrl := vibe.NewController(vibe.Options{Timing: fastTiming()})
	t.Cleanup(ctrl.Close)
	step := &fakeStepper{}
	m := NewPreviewModel(ctrl, fixedSampler{u: vibe.Uniforms{AudioLevel: 0.5}}, step,
		sentiment.NewClassifier(sentiment.Options{Seed: 1}), NewStyles(LightTheme()))
	return m, ctrl, step
}

func fastTiming() vibe.Timing {
	tm := vibe.DefaultTiming()
	tm.PulsePeriod = 20 * time.Millisecond
	return tm
}

func typeText(m PreviewModel, s string) PreviewModel {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(PreviewModel)
	}
	return m
}

func TestPreview_EnterClassifiesAndApplies(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = typeText(m, "tell me about love")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PreviewModel)

	require.NotNil(t, m.last)
	assert.Equal(t, vibe.ThemePassion, ctrl.State().ColorTheme)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.View(), "last question")
}

func TestPreview_PulseToggleAndQuit(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = next.(PreviewModel)
	assert.True(t, ctrl.State().IsSpeakingPulseActive)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(PreviewModel)
	assert.False(t, ctrl.State().IsSpeakingPulseActive, "quit stops the pulse")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestPreview_AdvanceAndFrames(t *testing.T) {
	m, _, step := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(PreviewModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = next.(PreviewModel)
	assert.Equal(t, 2, step.calls)
	assert.Equal(t, "demo at final phase", m.status)

	next, cmd := m.Update(FrameMsg(time.Now()))
	m = next.(PreviewModel)
	assert.NotNil(t, cmd, "frames keep ticking")
	assert.Equal(t, 0.5, m.frame.AudioLevel)

	next, _ = m.Update(ConfigReloadedMsg{})
	m = next.(PreviewModel)
	assert.True(t, strings.Contains(m.View(), "config reloaded"))
}

type fixedAnalyzer struct{ r sentiment.Result }

func (f fixedAnalyzer) Analyze(string) sentiment.Result { return f.r }

func TestPreview_ConfigReloadSwapsTimingAndAnalyzer(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	var got []vibe.Target
	unsub := ctrl.Subscribe(func(tg vibe.Target) { got = append(got, tg) })
	defer unsub()

	slow := vibe.DefaultTiming()
	slow.ThemeCrossfade = 7 * time.Second
	next, _ := m.Update(ConfigReloadedMsg{
		Timing:   slow,
		Analyzer: fixedAnalyzer{r: sentiment.Result{Theme: vibe.ThemeGrowth, Complexity: vibe.ComplexityStorm}},
	})
	m = next.(PreviewModel)
	assert.Equal(t, "config reloaded", m.status)

	m = typeText(m, "tell me about love")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PreviewModel)

	s := ctrl.State()
	assert.Equal(t, vibe.ThemeGrowth, s.ColorTheme, "the reloaded classifier answered")
	assert.Equal(t, vibe.ComplexityStorm, s.Complexity)

	var crossfades []time.Duration
	for _, tg := range got {
		if tg.Channel == vibe.ChannelColorA {
			crossfades = append(crossfades, tg.Duration)
		}
	}
	assert.Equal(t, []time.Duration{7 * time.Second}, crossfades)
}

func TestPreview_FailedReloadKeepsSettings(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	next, _ := m.Update(ConfigReloadedMsg{Err: assert.AnError})
	m = next.(PreviewModel)
	assert.Contains(t, m.status, "config reload failed")

	m = typeText(m, "tell me about love")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(PreviewModel)
	assert.Equal(t, vibe.ThemePassion, ctrl.State().ColorTheme, "original classifier still in place")
}
