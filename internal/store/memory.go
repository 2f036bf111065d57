// internal/store/memory.go
//
// In-memory registry of player sessions.
//
// Characteristics:
//   - Sessions keyed by ID in a map guarded by an RWMutex.
//   - Each session carries its own mutex; Do runs one player action at a
//     time per session so a round is never mutated concurrently.
//   - Sessions idle longer than the TTL are dropped by Sweep. A session
//     with an action in flight is never dropped.
//   - State is lost when the process restarts (the leaderboard is not).

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Crystallen1/lyricsWordle/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store holds player sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Do runs fn with exclusive access to the session.
	// Returns ErrNotFound if the session does not exist.
	Do(ctx context.Context, id string, fn func(*game.Session) error) error

	// Sweep drops sessions not used since before cutoff and returns how
	// many were removed.
	Sweep(ctx context.Context, cutoff time.Time) int

	// Len reports the number of live sessions.
	Len() int
}

type entry struct {
	mu   sync.Mutex // held while a player action runs
	sess *game.Session

	// guarded by memory.mu
	lastUsed time.Time
	inUse    int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions and entry bookkeeping
	sessions map[string]*entry // keyed by Session.ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{sess: s, lastUsed: m.now()}
	return nil
}

func (m *memory) Do(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	if ok {
		e.inUse++
		e.lastUsed = m.now()
	}
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	defer func() {
		m.mu.Lock()
		e.inUse--
		e.lastUsed = m.now()
		m.mu.Unlock()
	}()

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sess)
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.inUse == 0 && e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
