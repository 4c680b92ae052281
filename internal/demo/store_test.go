package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibecore/internal/vibe"
)

func TestAdvance_ReachesTerminalAfterSix(t *testing.T) {
	s := NewStore(nil)
	require.Equal(t, PhaseCoachIntro, s.Phase())

	for i := 0; i < 6; i++ {
		assert.True(t, s.Advance(), "step %d", i+1)
	}
	assert.Equal(t, PhaseCoach, s.Phase())

	assert.False(t, s.Advance())
	assert.Equal(t, PhaseCoach, s.Phase(), "no wraparound")
}

func TestAdvance_NotifiesSynchronously(t *testing.T) {
	s := NewStore(nil)
	var got [][2]Phase
	s.OnPhaseChange(func(prev, next Phase) {
		got = append(got, [2]Phase{prev, next})
	})

	s.Advance()
	require.Len(t, got, 1, "listener ran before Advance returned")
	assert.Equal(t, [2]Phase{PhaseCoachIntro, PhaseInterviewWarmup}, got[0])

	for s.Advance() {
	}
	assert.Len(t, got, 6, "terminal advance does not notify")
}

func TestReset_ReturnsToFirst(t *testing.T) {
	s := NewStore(nil)
	s.Advance()
	s.Advance()
	s.SetCoverage(55)

	var (
		order      []string
		prev, next Phase
	)
	s.OnCoverageChange(func(float64) { order = append(order, "coverage") })
	s.OnPhaseChange(func(p, n Phase) {
		order = append(order, "phase")
		prev, next = p, n
	})

	s.Reset()
	assert.Equal(t, PhaseCoachIntro, s.Phase())
	assert.Zero(t, s.Coverage())
	assert.Equal(t, []string{"coverage", "phase"}, order)
	assert.Equal(t, PhaseInterviewDeep, prev)
	assert.Equal(t, PhaseCoachIntro, next)

	order = nil
	s.Reset()
	assert.Equal(t, []string{"phase"}, order, "reset always notifies phase listeners")
}

func TestSetCoverage_ClampsAndDedupes(t *testing.T) {
	s := NewStore(nil)
	var got []float64
	s.OnCoverageChange(func(p float64) { got = append(got, p) })

	s.SetCoverage(-5)
	assert.Empty(t, got, "clamped to 0, which is unchanged")

	s.SetCoverage(150)
	s.SetCoverage(100)
	assert.Equal(t, []float64{100}, got)
}

func TestRecordAnswer_DerivesCoverage(t *testing.T) {
	s := NewStore(nil)
	s.RecordAnswer(3, 12)
	assert.Equal(t, 25.0, s.Coverage())

	s.RecordAnswer(20, 12)
	assert.Equal(t, 100.0, s.Coverage())

	s.RecordAnswer(1, 0)
	assert.Zero(t, s.Coverage())

	snap := s.Snapshot()
	assert.Zero(t, snap.Answered)
	assert.Zero(t, snap.Total)
}

func TestRestore_IsSilent(t *testing.T) {
	s := NewStore(nil)
	calls := 0
	s.OnPhaseChange(func(Phase, Phase) { calls++ })
	s.OnCoverageChange(func(float64) { calls++ })

	s.Restore(Snapshot{Phase: PhaseMatchSearch, CoveragePercent: 140, Answered: 9, Total: 9})
	assert.Zero(t, calls)
	assert.Equal(t, Snapshot{Phase: PhaseMatchSearch, CoveragePercent: 100, Answered: 9, Total: 9}, s.Snapshot())

	s.Restore(Snapshot{Phase: Phase(42)})
	assert.Equal(t, PhaseCoachIntro, s.Phase())
}

func TestUnsubscribe(t *testing.T) {
	s := NewStore(nil)
	calls := 0
	unsubPhase := s.OnPhaseChange(func(Phase, Phase) { calls++ })
	unsubCov := s.OnCoverageChange(func(float64) { calls++ })

	p, c := s.ListenerCount()
	require.Equal(t, 1, p)
	require.Equal(t, 1, c)

	unsubPhase()
	unsubPhase()
	unsubCov()
	s.Advance()
	s.SetCoverage(10)
	assert.Zero(t, calls)

	p, c = s.ListenerCount()
	assert.Zero(t, p)
	assert.Zero(t, c)
}

func TestPhase_AppStateMapping(t *testing.T) {
	seen := map[vibe.AppState]bool{}
	for _, p := range AllPhases() {
		a := p.AppState()
		assert.False(t, seen[a], "%s maps to a shared app state", p)
		seen[a] = true
	}
	assert.Len(t, seen, 7)
	assert.Panics(t, func() { Phase(99).AppState() })
}

func TestPhase_Names(t *testing.T) {
	for _, p := range AllPhases() {
		got, ok := ParsePhase(p.String())
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
	assert.True(t, PhaseInterviewDeep.CoverageDriven())
	assert.False(t, PhaseMatchReveal.CoverageDriven())
	assert.Equal(t, PhaseCoach, PhaseCoach.Next())
}
