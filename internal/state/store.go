package state

import (
	"sync"
	"time"

	"github.com/five82/lcat/internal/pipeline"
)

// Snapshot is a point-in-time copy of the outcome counters.
type Snapshot struct {
	Lines       int
	Emitted     int
	Suppressed  int
	PassedOn    int
	Dropped     int
	Started     time.Time
	LastUpdated time.Time
	LastError   error
}

// Invalid returns the number of lines that were not log records.
func (s Snapshot) Invalid() int {
	return s.PassedOn + s.Dropped
}

// Store coordinates concurrent updates to the counters.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Record counts one processed line.
func (s *Store) Record(kind pipeline.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.snapshot.Started.IsZero() {
		s.snapshot.Started = now
	}
	s.snapshot.Lines++
	switch kind {
	case pipeline.Emit:
		s.snapshot.Emitted++
	case pipeline.Suppressed:
		s.snapshot.Suppressed++
	case pipeline.PassThrough:
		s.snapshot.PassedOn++
	case pipeline.Dropped:
		s.snapshot.Dropped++
	}
	s.snapshot.LastUpdated = now
}

// Fail records a source error. Counters are kept.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
}

// Reset clears every counter. The last source error is kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{LastError: s.snapshot.LastError}
}

// Snapshot returns a copy of the current counters.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot
}
