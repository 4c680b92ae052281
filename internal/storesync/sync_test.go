package storesync

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"vibecore/internal/demo"
	"vibecore/internal/vibe"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newPair(t *testing.T) (*demo.Store, *vibe.Controller, *Sync) {
	t.Helper()
	st := demo.NewStore(nil)
	ctrl := vibe.NewController(vibe.Options{})
	t.Cleanup(ctrl.Close)
	s := New(st, ctrl, nil)
	t.Cleanup(s.Shutdown)
	return st, ctrl, s
}

func TestInitialize_IsIdempotent(t *testing.T) {
	st, ctrl, s := newPair(t)
	s.Initialize()
	s.Initialize()

	p, c := st.ListenerCount()
	assert.Equal(t, 1, p)
	assert.Equal(t, 1, c)

	before := ctrl.Revision()
	st.Advance()
	assert.Equal(t, before+1, ctrl.Revision(), "one phase change, one revision")
}

func TestPhaseChange_IsSynchronous(t *testing.T) {
	st, ctrl, s := newPair(t)
	s.Initialize()

	for _, p := range demo.AllPhases()[1:] {
		st.Advance()
		want := vibe.PresetFor(p.AppState())
		if p.CoverageDriven() {
			want.Theme = vibe.ThemeForCoverage(0)
		}
		got := ctrl.State()
		assert.Equal(t, want.Theme, got.ColorTheme, "theme at %s", p)
		assert.Equal(t, want.Complexity, got.Complexity, "complexity at %s", p)
		assert.Equal(t, want.Energy, got.OrbEnergy, "energy at %s", p)
	}
}

func TestCoverage_DrivesThemeDuringInterview(t *testing.T) {
	st, ctrl, s := newPair(t)
	s.Initialize()

	st.SetCoverage(90)
	got := ctrl.State()
	assert.Equal(t, 90.0, got.CoveragePercent, "coverage is recorded in every phase")
	assert.Equal(t, vibe.DefaultState().ColorTheme, got.ColorTheme, "but only interview phases follow the band")

	st.Advance()
	require.Equal(t, demo.PhaseInterviewWarmup, st.Phase())
	assert.Equal(t, vibe.ThemePassion, ctrl.State().ColorTheme, "entering the interview applies the band at once")

	st.SetCoverage(45)
	assert.Equal(t, vibe.ThemeGrowth, ctrl.State().ColorTheme)
	assert.Equal(t, 45.0, ctrl.State().CoveragePercent)
}

func TestShutdown_StopsPropagation(t *testing.T) {
	st, ctrl, s := newPair(t)
	s.Initialize()
	s.Shutdown()
	assert.False(t, s.Initialized())

	p, c := st.ListenerCount()
	assert.Zero(t, p)
	assert.Zero(t, c)

	rev := ctrl.Revision()
	st.Advance()
	assert.Equal(t, rev, ctrl.Revision())

	s.Initialize()
	st.Advance()
	assert.Equal(t, rev+1, ctrl.Revision())
}

func TestResync_AfterRestore(t *testing.T) {
	st, ctrl, s := newPair(t)
	s.Initialize()

	st.Restore(demo.Snapshot{Phase: demo.PhaseInterviewDeep, CoveragePercent: 85})
	assert.Equal(t, vibe.DefaultState(), ctrl.State(), "restore notifies nobody")

	s.Resync()
	got := ctrl.State()
	assert.Equal(t, vibe.ThemePassion, got.ColorTheme, "coverage band wins in interview phases")
	assert.Equal(t, 85.0, got.CoveragePercent)

	st.Restore(demo.Snapshot{Phase: demo.PhaseMatchReveal, CoveragePercent: 85})
	s.Resync()
	assert.Equal(t, vibe.PresetFor(vibe.AppMatchReveal).Theme, ctrl.State().ColorTheme)
}

func TestReset_ClearsControllerCoverage(t *testing.T) {
	st, ctrl, s := newPair(t)
	s.Initialize()

	st.Advance()
	st.SetCoverage(55)
	require.Equal(t, 55.0, ctrl.State().CoveragePercent)

	st.Reset()
	require.Zero(t, st.Coverage())
	got := ctrl.State()
	want := vibe.PresetFor(demo.PhaseCoachIntro.AppState())
	assert.Zero(t, got.CoveragePercent)
	assert.Equal(t, want.Theme, got.ColorTheme)
	assert.Equal(t, want.Complexity, got.Complexity)
	assert.Equal(t, want.Energy, got.OrbEnergy)
}

func TestLiveSync_MatchesResync(t *testing.T) {
	tests := []struct {
		name  string
		steps func(st *demo.Store)
	}{
		{"coverage carried into deep interview", func(st *demo.Store) {
			st.Advance()
			st.SetCoverage(50)
			st.Advance()
		}},
		{"coverage set before the interview", func(st *demo.Store) {
			st.SetCoverage(85)
			st.Advance()
		}},
		{"leaving the interview", func(st *demo.Store) {
			st.Advance()
			st.SetCoverage(70)
			st.Advance()
			st.Advance()
		}},
		{"reset mid interview", func(st *demo.Store) {
			st.Advance()
			st.SetCoverage(55)
			st.Reset()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ctrl, s := newPair(t)
			s.Initialize()

			tt.steps(st)
			live := ctrl.State()
			rev := ctrl.Revision()

			s.Resync()
			if diff := cmp.Diff(live, ctrl.State()); diff != "" {
				t.Errorf("live state differs from resync (-live +resync):\n%s", diff)
			}
			assert.Equal(t, rev, ctrl.Revision(), "resync found nothing to change")
		})
	}
}
