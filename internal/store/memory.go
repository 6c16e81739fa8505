// internal/store/memory.go
//
// In-memory session store.
// Game sessions live only as long as the process (and the browser cookie);
// nothing is written to disk.
//
// Characteristics:
//   - Stores *game.Session values keyed by session ID in a map.
//   - Map guarded by RWMutex; each entry has its own mutex so one session's
//     requests run one at a time while different sessions proceed in parallel.
//   - Every Update stamps the entry; Sweep drops entries idle too long.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/rps/internal/game"
)

// ErrNotFound is returned by Delete for an unknown session ID.
var ErrNotFound = errors.New("session not found")

// Store defines the session persistence interface.
type Store interface {
	// Update runs fn against the session for id, creating it first if needed.
	// fn runs with exclusive access to the session.
	Update(ctx context.Context, id string, fn func(*game.Session)) error

	// Delete removes a session. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions not updated within idle and reports how many.
	Sweep(ctx context.Context, idle time.Duration) int

	// Len reports the number of live sessions.
	Len() int
}

// entry wraps a session with its own lock and last-touched time.
type entry struct {
	mu       sync.Mutex
	session  *game.Session
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu         sync.RWMutex      // guards sessions map
	sessions   map[string]*entry // keyed by session ID
	newSession func() *game.Session
	now        func() time.Time
}

// Option configures the memory store.
type Option func(*memory)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *memory) { m.now = now }
}

// NewMemoryStore constructs an in-memory Store. newSession builds the session
// for an ID seen for the first time.
func NewMemoryStore(newSession func() *game.Session, opts ...Option) Store {
	m := &memory{
		sessions:   make(map[string]*entry),
		newSession: newSession,
		now:        time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// lookupOrCreate returns the entry for id, inserting a fresh one if missing.
func (m *memory) lookupOrCreate(id string) *entry {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		return e
	}
	e = &entry{session: m.newSession(), lastSeen: m.now()}
	m.sessions[id] = e
	return e
}

func (m *memory) Update(ctx context.Context, id string, fn func(*game.Session)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := m.acquire(id)
	defer e.mu.Unlock()
	fn(e.session)
	e.lastSeen = m.now()
	return nil
}

// acquire returns the live entry for id with its lock held. Sweep may drop
// an entry between lookup and lock; the dropped entry is released and the
// lookup repeated, so fn never runs on a session the map no longer holds.
func (m *memory) acquire(id string) *entry {
	for {
		e := m.lookupOrCreate(id)
		e.mu.Lock()
		if m.current(id, e) {
			return e
		}
		e.mu.Unlock()
	}
}

// current reports whether e is still the map's entry for id.
func (m *memory) current(id string, e *entry) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id] == e
}

func (m *memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		// An entry locked by an in-flight Update is busy, not idle.
		if !e.mu.TryLock() {
			continue
		}
		stale := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if stale {
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
