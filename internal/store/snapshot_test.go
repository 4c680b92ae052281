package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibecore/internal/demo"
	"vibecore/internal/storesync"
	"vibecore/internal/vibe"
)

func openTemp(t *testing.T) *SnapshotStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "vibe.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "vibe.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, path, s.Path())
	assert.FileExists(t, path)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	id := NewSessionID()

	want := demo.Snapshot{Phase: demo.PhaseInterviewDeep, CoveragePercent: 62.5, Answered: 5, Total: 8}
	require.NoError(t, s.Save(ctx, id, want))

	got, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want.Phase = demo.PhaseCoach
	require.NoError(t, s.Save(ctx, id, want))
	got, err = s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, demo.PhaseCoach, got.Phase, "save upserts")
}

func TestLoad_NotFound(t *testing.T) {
	s := openTemp(t)
	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSave_Validates(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	assert.Error(t, s.Save(ctx, "", demo.Snapshot{}))
	assert.Error(t, s.Save(ctx, "x", demo.Snapshot{Phase: demo.Phase(-1)}))
}

func TestListAndDelete(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	a, b := NewSessionID(), NewSessionID()
	require.NoError(t, s.Save(ctx, a, demo.Snapshot{Phase: demo.PhaseCoachIntro}))
	require.NoError(t, s.Save(ctx, b, demo.Snapshot{Phase: demo.PhaseMatchSearch}))

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b, list[0].ID, "newest first")

	require.NoError(t, s.Delete(ctx, a))
	require.NoError(t, s.Delete(ctx, a))
	list, err = s.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestNewSessionID_IsUUID(t *testing.T) {
	_, err := uuid.Parse(NewSessionID())
	assert.NoError(t, err)
}

func TestRestoreThenResync(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	id := NewSessionID()
	require.NoError(t, s.Save(ctx, id, demo.Snapshot{Phase: demo.PhaseInterviewWarmup, CoveragePercent: 25}))

	st := demo.NewStore(nil)
	ctrl := vibe.NewController(vibe.Options{})
	defer ctrl.Close()
	sync := storesync.New(st, ctrl, nil)
	sync.Initialize()
	defer sync.Shutdown()

	snap, err := s.Load(ctx, id)
	require.NoError(t, err)
	st.Restore(snap)
	sync.Resync()

	got := ctrl.State()
	assert.Equal(t, vibe.ThemeDeep, got.ColorTheme, "25 falls in the 20-40 band")
	assert.Equal(t, 25.0, got.CoveragePercent)
}
