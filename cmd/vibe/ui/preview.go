package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vibecore/internal/sentiment"
	"vibecore/internal/vibe"
)

// FrameInterval is the preview's redraw period.
const FrameInterval = 33 * time.Millisecond

// Controller is what the preview drives.
type Controller interface {
	State() vibe.State
	SetVibe(theme vibe.ColorTheme, level vibe.Complexity)
	SetFromResponse(q vibe.ResponseQuality)
	StartSpeakingPulse()
	StopSpeakingPulse()
	Reset()
	SetTiming(t vibe.Timing)
}

// Sampler produces interpolated frames, normally a *vibe.Animator
// subscribed to the controller.
type Sampler interface {
	Sample(now time.Time) vibe.Uniforms
}

// Stepper advances the demo phase machine.
type Stepper interface {
	Advance() bool
}

// Analyzer classifies typed questions.
type Analyzer interface {
	Analyze(text string) sentiment.Result
}

// FrameMsg carries the wall-clock time of a redraw.
type FrameMsg time.Time

// ConfigReloadedMsg reports a config reload from the watcher. On success it
// carries the new timing and a classifier built from the new options.
type ConfigReloadedMsg struct {
	Timing   vibe.Timing
	Analyzer Analyzer
	Err      error
}

// PreviewModel is the bubbletea model behind `vibe preview`.
type PreviewModel struct {
	ctrl     Controller
	sampler  Sampler
	demo     Stepper
	analyzer Analyzer
	styles   Styles
	input    textinput.Model

	frame    vibe.Uniforms
	last     *sentiment.Result
	status   string
	speaking bool
	width    int
}

// NewPreviewModel wires a preview. demo may be nil.
func NewPreviewModel(ctrl Controller, sampler Sampler, demo Stepper, analyzer Analyzer, styles Styles) PreviewModel {
	ti := textinput.New()
	ti.Placeholder = "Type a question and press Enter"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 512
	ti.Width = 60
	ti.PromptStyle = styles.Prompt

	return PreviewModel{
		ctrl:     ctrl,
		sampler:  sampler,
		demo:     demo,
		analyzer: analyzer,
		styles:   styles,
		input:    ti,
	}
}

func tick() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

func (m PreviewModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.speaking {
				m.ctrl.StopSpeakingPulse()
			}
			return m, tea.Quit

		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			r := m.analyzer.Analyze(text)
			sentiment.Apply(m.ctrl, r)
			m.last = &r
			m.status = fmt.Sprintf("classified as %s/%s", r.Theme, r.Complexity)
			m.input.Reset()
			return m, nil

		case tea.KeyCtrlP:
			if m.speaking {
				m.ctrl.StopSpeakingPulse()
				m.status = "pulse stopped"
			} else {
				m.ctrl.StartSpeakingPulse()
				m.status = "pulse started"
			}
			m.speaking = !m.speaking
			return m, nil

		case tea.KeyCtrlN:
			if m.demo == nil {
				m.status = "no demo attached"
				return m, nil
			}
			if m.demo.Advance() {
				m.status = "demo advanced"
			} else {
				m.status = "demo at final phase"
			}
			return m, nil

		case tea.KeyCtrlF:
			m.ctrl.SetFromResponse(vibe.ResponseProfound)
			m.status = "rewarded a profound answer"
			return m, nil

		case tea.KeyCtrlR:
			m.ctrl.Reset()
			m.speaking = false
			m.last = nil
			m.status = "reset"
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 8 {
			m.input.Width = msg.Width - 8
		}
		return m, nil

	case FrameMsg:
		m.frame = m.sampler.Sample(time.Time(msg))
		return m, tick()

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.status = "config reload failed: " + msg.Err.Error()
			return m, nil
		}
		m.ctrl.SetTiming(msg.Timing)
		if msg.Analyzer != nil {
			m.analyzer = msg.Analyzer
		}
		m.status = "config reloaded"
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PreviewModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("vibe preview"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Uniforms(m.frame))
	b.WriteString("\n\n")

	state := m.styles.State(m.ctrl.State())
	if m.last != nil {
		cfg := sentiment.ToRenderConfig(*m.last, m.ctrl.State().BackgroundIndex)
		state = lipgloss.JoinHorizontal(lipgloss.Top, state, " ", m.styles.Result("last question", *m.last, cfg))
	}
	b.WriteString(state)
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.styles.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("enter classify · ctrl+p pulse · ctrl+n advance demo · ctrl+f reward · ctrl+r reset · esc quit"))
	return b.String()
}
