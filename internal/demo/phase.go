package demo

import (
	"fmt"

	"vibecore/internal/vibe"
)

// Phase is a position in the guided demo: the coach introduces itself, runs
// a two-stage interview, builds the profile, searches, reveals a match and
// hands over to ongoing coaching.
type Phase int

const (
	// PhaseCoachIntro is the first phase and the reset target.
	PhaseCoachIntro Phase = iota

	// PhaseInterviewWarmup asks light questions; coverage drives the theme.
	PhaseInterviewWarmup

	// PhaseInterviewDeep asks the heavier questions; coverage drives the theme.
	PhaseInterviewDeep

	// PhaseProfileBuild turns answers into a profile.
	PhaseProfileBuild

	// PhaseMatchSearch looks for candidates.
	PhaseMatchSearch

	// PhaseMatchReveal presents the match.
	PhaseMatchReveal

	// PhaseCoach is terminal: Advance does nothing here.
	PhaseCoach

	phaseCount
)

// First and Last bound the linear machine.
const (
	First = PhaseCoachIntro
	Last  = PhaseCoach
)

// AllPhases lists the phases in order.
func AllPhases() []Phase {
	out := make([]Phase, 0, phaseCount)
	for p := First; p <= Last; p++ {
		out = append(out, p)
	}
	return out
}

// phaseAppStates maps every phase to the app state whose preset it shows.
var phaseAppStates = [phaseCount]vibe.AppState{
	PhaseCoachIntro:      vibe.AppCoachIntro,
	PhaseInterviewWarmup: vibe.AppInterviewWarmup,
	PhaseInterviewDeep:   vibe.AppInterviewDeep,
	PhaseProfileBuild:    vibe.AppProfileBuild,
	PhaseMatchSearch:     vibe.AppMatchSearch,
	PhaseMatchReveal:     vibe.AppMatchReveal,
	PhaseCoach:           vibe.AppCoach,
}

func init() {
	seen := make(map[vibe.AppState]Phase, phaseCount)
	for _, p := range AllPhases() {
		a := phaseAppStates[p]
		if prev, dup := seen[a]; dup {
			panic(fmt.Sprintf("demo: phases %s and %s share app state %s", prev, p, a))
		}
		seen[a] = p
	}
}

// IsValid reports whether p is a declared phase.
func (p Phase) IsValid() bool { return p >= First && p <= Last }

// IsTerminal reports whether p is the last phase.
func (p Phase) IsTerminal() bool { return p == Last }

// CoverageDriven reports whether interview coverage owns the theme in p.
func (p Phase) CoverageDriven() bool {
	return p == PhaseInterviewWarmup || p == PhaseInterviewDeep
}

// AppState returns the app state whose preset p shows.
func (p Phase) AppState() vibe.AppState {
	if !p.IsValid() {
		panic(fmt.Sprintf("demo: invalid Phase %d", int(p)))
	}
	return phaseAppStates[p]
}

// Next returns the following phase; the terminal phase returns itself.
func (p Phase) Next() Phase {
	if p >= Last {
		return Last
	}
	return p + 1
}

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCoachIntro:
		return "coach_intro"
	case PhaseInterviewWarmup:
		return "interview_warmup"
	case PhaseInterviewDeep:
		return "interview_deep"
	case PhaseProfileBuild:
		return "profile_build"
	case PhaseMatchSearch:
		return "match_search"
	case PhaseMatchReveal:
		return "match_reveal"
	case PhaseCoach:
		return "coach"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ParsePhase maps a phase name back to its value.
func ParsePhase(s string) (Phase, bool) {
	for _, p := range AllPhases() {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}
