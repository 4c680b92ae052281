package vibe

import (
	"fmt"
	"math"
)

// Party identifies which conversational participant is driving the moment.
type Party int

const (
	// PartyUser is the person using the app.
	PartyUser Party = iota

	// PartyAbby is the assistant.
	PartyAbby

	partyCount
)

// String returns a human-readable name for the party.
func (p Party) String() string {
	switch p {
	case PartyUser:
		return "user"
	case PartyAbby:
		return "abby"
	default:
		return fmt.Sprintf("party(%d)", int(p))
	}
}

// IsValid reports whether p is a declared party.
func (p Party) IsValid() bool { return p >= 0 && p < partyCount }

// Mode is a behavioural mode. Each Mode belongs to exactly one Party, so a
// UserMode can never be stored while Abby is active and vice versa.
type Mode interface {
	Party() Party
	String() string
	isMode()
}

// UserMode is a behavioural mode of the user.
type UserMode int

const (
	UserIdle UserMode = iota
	UserTyping
	UserSpeaking
	UserReading

	userModeCount
)

func (m UserMode) Party() Party { return PartyUser }
func (m UserMode) isMode()      {}

// IsValid reports whether m is a declared user mode.
func (m UserMode) IsValid() bool { return m >= 0 && m < userModeCount }

func (m UserMode) String() string {
	switch m {
	case UserIdle:
		return "idle"
	case UserTyping:
		return "typing"
	case UserSpeaking:
		return "speaking"
	case UserReading:
		return "reading"
	default:
		return fmt.Sprintf("user_mode(%d)", int(m))
	}
}

// AbbyMode is a behavioural mode of the assistant.
type AbbyMode int

const (
	AbbyListening AbbyMode = iota
	AbbyThinking
	AbbySpeaking
	AbbyReacting

	abbyModeCount
)

func (m AbbyMode) Party() Party { return PartyAbby }
func (m AbbyMode) isMode()      {}

// IsValid reports whether m is a declared assistant mode.
func (m AbbyMode) IsValid() bool { return m >= 0 && m < abbyModeCount }

func (m AbbyMode) String() string {
	switch m {
	case AbbyListening:
		return "listening"
	case AbbyThinking:
		return "thinking"
	case AbbySpeaking:
		return "speaking"
	case AbbyReacting:
		return "reacting"
	default:
		return fmt.Sprintf("abby_mode(%d)", int(m))
	}
}

// defaultMode is the mode a party falls into when it becomes active without
// an explicit mode.
func defaultMode(p Party) Mode {
	if p == PartyAbby {
		return AbbyListening
	}
	return UserIdle
}

// ColorTheme is the emotional colour family of the background.
type ColorTheme int

const (
	ThemeTrust ColorTheme = iota
	ThemePassion
	ThemeCaution
	ThemeGrowth
	ThemeDeep

	// ThemeAlert is a safety overlay. It is never part of the addressable
	// configuration space.
	ThemeAlert

	themeCount
)

// AllThemes lists every theme in declaration order.
func AllThemes() []ColorTheme {
	return []ColorTheme{ThemeTrust, ThemePassion, ThemeCaution, ThemeGrowth, ThemeDeep, ThemeAlert}
}

// IsValid reports whether t is a declared theme.
func (t ColorTheme) IsValid() bool { return t >= 0 && t < themeCount }

func (t ColorTheme) String() string {
	switch t {
	case ThemeTrust:
		return "trust"
	case ThemePassion:
		return "passion"
	case ThemeCaution:
		return "caution"
	case ThemeGrowth:
		return "growth"
	case ThemeDeep:
		return "deep"
	case ThemeAlert:
		return "alert"
	default:
		return fmt.Sprintf("theme(%d)", int(t))
	}
}

// ParseColorTheme maps a theme name back to its value.
func ParseColorTheme(s string) (ColorTheme, bool) {
	for _, t := range AllThemes() {
		if t.String() == s {
			return t, true
		}
	}
	return 0, false
}

// Complexity is the ordered visual busyness level.
type Complexity int

const (
	ComplexitySmoothie Complexity = iota
	ComplexityFlow
	ComplexityOcean
	ComplexityStorm
	ComplexityPaisley

	complexityCount
)

// AllComplexities lists every level from calmest to busiest.
func AllComplexities() []Complexity {
	return []Complexity{ComplexitySmoothie, ComplexityFlow, ComplexityOcean, ComplexityStorm, ComplexityPaisley}
}

// IsValid reports whether c is a declared level.
func (c Complexity) IsValid() bool { return c >= 0 && c < complexityCount }

// Value returns the numeric value of the level in [0,1].
func (c Complexity) Value() float64 { return complexityValues[c] }

func (c Complexity) String() string {
	switch c {
	case ComplexitySmoothie:
		return "smoothie"
	case ComplexityFlow:
		return "flow"
	case ComplexityOcean:
		return "ocean"
	case ComplexityStorm:
		return "storm"
	case ComplexityPaisley:
		return "paisley"
	default:
		return fmt.Sprintf("complexity(%d)", int(c))
	}
}

// ParseComplexity maps a level name back to its value.
func ParseComplexity(s string) (Complexity, bool) {
	for _, c := range AllComplexities() {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// OrbEnergy is the engagement level driving the avatar orb.
type OrbEnergy int

const (
	EnergyCalm OrbEnergy = iota
	EnergyEngaged
	EnergyExcited

	energyCount
)

// AllEnergies lists every orb energy from lowest to highest.
func AllEnergies() []OrbEnergy {
	return []OrbEnergy{EnergyCalm, EnergyEngaged, EnergyExcited}
}

// IsValid reports whether e is a declared energy.
func (e OrbEnergy) IsValid() bool { return e >= 0 && e < energyCount }

// Value returns the numeric orb intensity.
func (e OrbEnergy) Value() float64 { return energyValues[e] }

func (e OrbEnergy) String() string {
	switch e {
	case EnergyCalm:
		return "calm"
	case EnergyEngaged:
		return "engaged"
	case EnergyExcited:
		return "excited"
	default:
		return fmt.Sprintf("energy(%d)", int(e))
	}
}

// ResponseQuality grades a user's answer for the reward table.
type ResponseQuality int

const (
	ResponseBrief ResponseQuality = iota
	ResponseThoughtful
	ResponseProfound

	responseQualityCount
)

// IsValid reports whether q is a declared quality.
func (q ResponseQuality) IsValid() bool { return q >= 0 && q < responseQualityCount }

func (q ResponseQuality) String() string {
	switch q {
	case ResponseBrief:
		return "brief"
	case ResponseThoughtful:
		return "thoughtful"
	case ResponseProfound:
		return "profound"
	default:
		return fmt.Sprintf("response(%d)", int(q))
	}
}

// AppState is a coarse application phase with a fixed visual preset.
type AppState int

const (
	AppWelcome AppState = iota
	AppOnboarding
	AppCoachIntro
	AppInterviewWarmup
	AppInterviewDeep
	AppProfileBuild
	AppMatchSearch
	AppMatchReveal
	AppCoach
	AppChat

	appStateCount
)

// AllAppStates lists every app state.
func AllAppStates() []AppState {
	out := make([]AppState, 0, appStateCount)
	for s := AppState(0); s < appStateCount; s++ {
		out = append(out, s)
	}
	return out
}

// IsValid reports whether s is a declared app state.
func (s AppState) IsValid() bool { return s >= 0 && s < appStateCount }

func (s AppState) String() string {
	switch s {
	case AppWelcome:
		return "welcome"
	case AppOnboarding:
		return "onboarding"
	case AppCoachIntro:
		return "coach_intro"
	case AppInterviewWarmup:
		return "interview_warmup"
	case AppInterviewDeep:
		return "interview_deep"
	case AppProfileBuild:
		return "profile_build"
	case AppMatchSearch:
		return "match_search"
	case AppMatchReveal:
		return "match_reveal"
	case AppCoach:
		return "coach"
	case AppChat:
		return "chat"
	default:
		return fmt.Sprintf("app_state(%d)", int(s))
	}
}

// ParseAppState maps an app state name back to its value.
func ParseAppState(s string) (AppState, bool) {
	for _, st := range AllAppStates() {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// RGB is a linear colour triple with components in [0,1].
type RGB struct {
	R, G, B float64
}

// Lerp interpolates between c and to by t in [0,1].
func (c RGB) Lerp(to RGB, t float64) RGB {
	return RGB{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func channelByte(v float64) int {
	return int(clamp01(v)*255 + 0.5)
}

// State is the complete logical visual state.
type State struct {
	ActiveParty           Party
	ActiveMode            Mode
	ColorTheme            ColorTheme
	Complexity            Complexity
	ComplexityValue       float64
	OrbEnergy             OrbEnergy
	ColorA                RGB
	ColorB                RGB
	AudioLevel            float64
	IsSpeakingPulseActive bool
	CoveragePercent       float64
	BackgroundIndex       int
}

// DefaultState is the state every controller starts from and returns to on
// Reset.
func DefaultState() State {
	p := themePalettes[ThemeDeep]
	return State{
		ActiveParty:     PartyUser,
		ActiveMode:      UserIdle,
		ColorTheme:      ThemeDeep,
		Complexity:      ComplexitySmoothie,
		ComplexityValue: ComplexitySmoothie.Value(),
		OrbEnergy:       EnergyCalm,
		ColorA:          p.A,
		ColorB:          p.B,
	}
}

// Uniforms are the shader inputs derived from State.
type Uniforms struct {
	ColorA          RGB
	ColorB          RGB
	ComplexityValue float64
	AudioLevel      float64
	OrbEnergy       float64
	Speaking        bool
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
