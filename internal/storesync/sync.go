// Package storesync keeps a vibe controller in step with the demo phase
// machine. Every update is applied synchronously in the goroutine that
// changed the demo store.
package storesync

import (
	"sync"

	"go.uber.org/zap"

	"vibecore/internal/demo"
	"vibecore/internal/vibe"
)

// Source is the part of the demo store that Sync reads and listens to.
type Source interface {
	Snapshot() demo.Snapshot
	OnPhaseChange(fn func(prev, next demo.Phase)) (unsubscribe func())
	OnCoverageChange(fn func(pct float64)) (unsubscribe func())
}

// Sink is the part of the controller that Sync drives.
type Sink interface {
	SetFromPhase(a vibe.AppState, coverage float64, coverageDriven bool)
	SetCoveragePercent(pct float64)
	RecordCoveragePercent(pct float64)
}

// Sync propagates phase and coverage changes from a Source into a Sink.
type Sync struct {
	src    Source
	dst    Sink
	logger *zap.Logger

	mu          sync.Mutex
	initialized bool
	unsubs      []func()
}

// New returns an uninitialised Sync. Call Initialize to start propagating.
func New(src Source, dst Sink, logger *zap.Logger) *Sync {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sync{src: src, dst: dst, logger: logger}
}

// Initialize installs the store subscriptions. Repeat calls are no-ops until
// Shutdown runs.
func (s *Sync) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		s.logger.Debug("storesync already initialized")
		return
	}
	s.unsubs = append(s.unsubs,
		s.src.OnPhaseChange(s.onPhase),
		s.src.OnCoverageChange(s.onCoverage),
	)
	s.initialized = true
	s.logger.Info("storesync initialized")
}

// Shutdown removes the subscriptions. A later Initialize installs them again.
func (s *Sync) Shutdown() {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	was := s.initialized
	s.initialized = false
	s.mu.Unlock()

	for _, u := range unsubs {
		u()
	}
	if was {
		s.logger.Info("storesync shut down")
	}
}

// Initialized reports whether subscriptions are installed.
func (s *Sync) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Resync re-derives the vibe from the store's current state: the phase
// preset plus the recorded coverage, with the coverage band taking the theme
// when the phase is coverage-driven. Use it after demo.Store.Restore, which
// notifies nobody. A live sync and a Resync of the same store agree.
func (s *Sync) Resync() {
	snap := s.src.Snapshot()
	s.apply(snap.Phase, snap.CoveragePercent)
	s.logger.Debug("storesync resync",
		zap.Stringer("phase", snap.Phase),
		zap.Float64("coverage", snap.CoveragePercent))
}

func (s *Sync) onPhase(prev, next demo.Phase) {
	s.logger.Debug("phase change", zap.Stringer("from", prev), zap.Stringer("to", next))
	s.apply(next, s.src.Snapshot().CoveragePercent)
}

// onCoverage always records coverage. Outside coverage-driven phases the
// preset keeps the theme.
func (s *Sync) onCoverage(pct float64) {
	if s.src.Snapshot().Phase.CoverageDriven() {
		s.dst.SetCoveragePercent(pct)
		return
	}
	s.dst.RecordCoveragePercent(pct)
}

func (s *Sync) apply(p demo.Phase, coverage float64) {
	s.dst.SetFromPhase(p.AppState(), coverage, p.CoverageDriven())
}
