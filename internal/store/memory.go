// internal/store/memory.go
//
// In-memory store of solver sessions for the HTTP API.
//
// Characteristics:
//   - Sessions are keyed by ID in a map guarded by an RWMutex.
//   - A Session carries its own mutex; handlers hold it while driving the
//     solver, since a Solver is single-threaded.
//   - Idle sessions are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/evanmacbride/beat-wordle/internal/solver"
)

// ErrNotFound is returned for unknown session or run IDs.
var ErrNotFound = errors.New("not found")

// Session is one solver game driven over the API.
type Session struct {
	sync.Mutex

	ID      string
	Solver  *solver.Solver
	Created time.Time
	Touched time.Time
}

// Sessions persists solver sessions.
type Sessions interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get returns a session and marks it used.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session; unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Sweep drops sessions idle since before cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore constructs an empty in-memory Sessions store.
func NewMemoryStore() Sessions {
	return &memory{sessions: make(map[string]*Session), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if s.Created.IsZero() {
		s.Created = now
	}
	s.Touched = now
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Touched = m.now()
	return s, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.Touched.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
