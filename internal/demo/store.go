// Package demo is the guided interview/demo phase machine. It is a linear
// seven-phase machine plus an interview coverage percentage, and it publishes
// two independent signals: phase changes and coverage changes. Listeners run
// synchronously inside the mutating call.
package demo

import (
	"math"
	"sync"

	"go.uber.org/zap"
)

// Snapshot is the persistable state of a Store.
type Snapshot struct {
	Phase           Phase
	CoveragePercent float64
	Answered        int
	Total           int
}

// Store holds the current phase and coverage.
type Store struct {
	mu       sync.Mutex
	phase    Phase
	coverage float64
	answered int
	total    int

	nextID       uint64
	phaseSubs    []phaseSub
	coverageSubs []coverageSub

	logger *zap.Logger
}

type phaseSub struct {
	id uint64
	fn func(prev, next Phase)
}

type coverageSub struct {
	id uint64
	fn func(pct float64)
}

// NewStore returns a store at the first phase with zero coverage.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{phase: First, logger: logger}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Phase:           s.phase,
		CoveragePercent: s.coverage,
		Answered:        s.answered,
		Total:           s.total,
	}
}

// Phase returns the current phase.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Coverage returns the current coverage percentage.
func (s *Store) Coverage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coverage
}

// Advance steps to the next phase and reports whether it moved. At the
// terminal phase it does nothing.
func (s *Store) Advance() bool {
	s.mu.Lock()
	prev := s.phase
	if prev.IsTerminal() {
		s.mu.Unlock()
		s.logger.Debug("advance at terminal phase ignored", zap.Stringer("phase", prev))
		return false
	}
	next := prev.Next()
	s.phase = next
	subs := s.phaseListeners()
	s.mu.Unlock()

	s.logger.Info("demo phase advanced", zap.Stringer("from", prev), zap.Stringer("to", next))
	for _, fn := range subs {
		fn(prev, next)
	}
	return true
}

// Reset returns to the first phase with zero coverage. Phase listeners are
// always notified, coverage listeners only if coverage changed, and coverage
// is notified first so that the phase preset has the last word.
func (s *Store) Reset() {
	s.mu.Lock()
	prev := s.phase
	covChanged := s.coverage != 0
	s.phase = First
	s.coverage = 0
	s.answered = 0
	s.total = 0
	psubs := s.phaseListeners()
	csubs := s.coverageListeners()
	s.mu.Unlock()

	s.logger.Info("demo reset", zap.Stringer("from", prev))
	if covChanged {
		for _, fn := range csubs {
			fn(0)
		}
	}
	for _, fn := range psubs {
		fn(prev, First)
	}
}

// SetCoverage records interview coverage, clamped to [0,100]. Listeners are
// notified only when the value changes.
func (s *Store) SetCoverage(pct float64) {
	pct = clampPercent(pct)
	s.mu.Lock()
	if pct == s.coverage {
		s.mu.Unlock()
		return
	}
	s.coverage = pct
	subs := s.coverageListeners()
	s.mu.Unlock()

	s.logger.Debug("coverage changed", zap.Float64("percent", pct))
	for _, fn := range subs {
		fn(pct)
	}
}

// RecordAnswer derives coverage from answered out of total questions.
func (s *Store) RecordAnswer(answered, total int) {
	if total <= 0 {
		total = 0
		answered = 0
	}
	if answered < 0 {
		answered = 0
	}
	if answered > total {
		answered = total
	}
	s.mu.Lock()
	s.answered = answered
	s.total = total
	s.mu.Unlock()

	pct := 0.0
	if total > 0 {
		pct = 100 * float64(answered) / float64(total)
	}
	s.SetCoverage(pct)
}

// Restore replaces the state out-of-band, for example after loading a saved
// session. No listener is notified; callers resync dependents themselves.
func (s *Store) Restore(snap Snapshot) {
	if !snap.Phase.IsValid() {
		snap.Phase = First
	}
	s.mu.Lock()
	s.phase = snap.Phase
	s.coverage = clampPercent(snap.CoveragePercent)
	s.answered = snap.Answered
	s.total = snap.Total
	s.mu.Unlock()

	s.logger.Info("demo state restored",
		zap.Stringer("phase", snap.Phase),
		zap.Float64("coverage", snap.CoveragePercent))
}

// OnPhaseChange registers fn for phase transitions.
func (s *Store) OnPhaseChange(fn func(prev, next Phase)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.phaseSubs = append(s.phaseSubs, phaseSub{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.phaseSubs {
				if sub.id == id {
					s.phaseSubs = append(s.phaseSubs[:i:i], s.phaseSubs[i+1:]...)
					return
				}
			}
		})
	}
}

// OnCoverageChange registers fn for coverage changes.
func (s *Store) OnCoverageChange(fn func(pct float64)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.coverageSubs = append(s.coverageSubs, coverageSub{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.coverageSubs {
				if sub.id == id {
					s.coverageSubs = append(s.coverageSubs[:i:i], s.coverageSubs[i+1:]...)
					return
				}
			}
		})
	}
}

// ListenerCount reports how many phase and coverage listeners are installed.
func (s *Store) ListenerCount() (phase, coverage int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.phaseSubs), len(s.coverageSubs)
}

// phaseListeners requires s.mu.
func (s *Store) phaseListeners() []func(prev, next Phase) {
	out := make([]func(prev, next Phase), len(s.phaseSubs))
	for i, sub := range s.phaseSubs {
		out[i] = sub.fn
	}
	return out
}

// coverageListeners requires s.mu.
func (s *Store) coverageListeners() []func(pct float64) {
	out := make([]func(pct float64), len(s.coverageSubs))
	for i, sub := range s.coverageSubs {
		out[i] = sub.fn
	}
	return out
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
