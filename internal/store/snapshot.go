// Package store persists demo sessions in SQLite so a run can be resumed.
// A restored snapshot bypasses the demo store's listeners; callers follow
// a load with storesync.Sync.Resync.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"vibecore/internal/demo"
	"vibecore/internal/logging"
)

// ErrSnapshotNotFound is returned by Load for an unknown session id.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SessionInfo summarises a saved session.
type SessionInfo struct {
	ID        string
	Phase     demo.Phase
	Coverage  float64
	UpdatedAt time.Time
}

// SnapshotStore saves demo snapshots keyed by session id.
type SnapshotStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	logger *zap.Logger
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Open initializes the SQLite database at the given path. ":memory:" is
// accepted for tests.
func Open(path string, logger *zap.Logger) (*SnapshotStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	timer := logging.StartTimer(logger, "store.open")
	defer timer.Stop()

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("failed to set busy_timeout", zap.Error(err))
	}

	s := &SnapshotStore{db: db, dbPath: path, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("snapshot store ready", zap.String("path", path))
	return s, nil
}

func (s *SnapshotStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS demo_snapshots (
		session_id TEXT PRIMARY KEY,
		phase TEXT NOT NULL,
		coverage REAL NOT NULL DEFAULT 0,
		answered INTEGER NOT NULL DEFAULT 0,
		total INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_demo_snapshots_updated ON demo_snapshots(updated_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save upserts the snapshot for sessionID.
func (s *SnapshotStore) Save(ctx context.Context, sessionID string, snap demo.Snapshot) error {
	if sessionID == "" {
		return errors.New("session id required")
	}
	if !snap.Phase.IsValid() {
		return fmt.Errorf("invalid phase %d", int(snap.Phase))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO demo_snapshots (session_id, phase, coverage, answered, total, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
			phase = excluded.phase,
			coverage = excluded.coverage,
			answered = excluded.answered,
			total = excluded.total,
			updated_at = excluded.updated_at`,
		sessionID, snap.Phase.String(), snap.CoveragePercent, snap.Answered, snap.Total,
		time.Now().UnixNano(),
	)
	if err != nil {
		s.logger.Error("failed to save snapshot", zap.String("session", sessionID), zap.Error(err))
		return fmt.Errorf("failed to save snapshot %s: %w", sessionID, err)
	}
	s.logger.Debug("snapshot saved",
		zap.String("session", sessionID),
		zap.Stringer("phase", snap.Phase),
		zap.Float64("coverage", snap.CoveragePercent))
	return nil
}

// Load returns the snapshot for sessionID, or ErrSnapshotNotFound.
func (s *SnapshotStore) Load(ctx context.Context, sessionID string) (demo.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		phaseName string
		snap      demo.Snapshot
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT phase, coverage, answered, total FROM demo_snapshots WHERE session_id = ?`,
		sessionID,
	).Scan(&phaseName, &snap.CoveragePercent, &snap.Answered, &snap.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return demo.Snapshot{}, fmt.Errorf("%s: %w", sessionID, ErrSnapshotNotFound)
	}
	if err != nil {
		return demo.Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", sessionID, err)
	}

	p, ok := demo.ParsePhase(phaseName)
	if !ok {
		return demo.Snapshot{}, fmt.Errorf("snapshot %s has unknown phase %q", sessionID, phaseName)
	}
	snap.Phase = p
	return snap, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM demo_snapshots WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", sessionID, err)
	}
	return nil
}

// List returns saved sessions, most recently updated first.
func (s *SnapshotStore) List(ctx context.Context, limit int) ([]SessionInfo, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, phase, coverage, updated_at
		 FROM demo_snapshots
		 ORDER BY updated_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []SessionInfo
	for rows.Next() {
		var (
			info      SessionInfo
			phaseName string
			updated   int64
		)
		if err := rows.Scan(&info.ID, &phaseName, &info.Coverage, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		p, ok := demo.ParsePhase(phaseName)
		if !ok {
			s.logger.Warn("skipping snapshot with unknown phase", zap.String("session", info.ID), zap.String("phase", phaseName))
			continue
		}
		info.Phase = p
		info.UpdatedAt = time.Unix(0, updated)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Path returns the database path.
func (s *SnapshotStore) Path() string { return s.dbPath }

// Close closes the database.
func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
