package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/session"
)

// sessionEntry is one hosted play session. mu serializes every event
// applied to state.
type sessionEntry struct {
	mu       sync.Mutex
	owner    string
	state    *session.SessionState
	lastUsed time.Time

	// recorded is set once the completed run has been stored as an attempt.
	recorded bool
}

// SessionRegistry hosts in-progress sessions for the API. The registry lock
// only guards the map; per-session work happens under the entry lock.
type SessionRegistry struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionRegistry returns a registry evicting sessions idle for ttl.
// A zero ttl keeps sessions until they are deleted.
func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// create starts a session over questions, which must already be normalized.
func (r *SessionRegistry) create(owner, quizID string, questions []quiz.Question) (*sessionEntry, error) {
	id := uuid.NewString()
	state, err := session.NewSessionState(id, quizID, questions)
	if err != nil {
		return nil, err
	}

	e := &sessionEntry{owner: owner, state: state, lastUsed: r.now()}

	r.mu.Lock()
	r.entries[id] = e
	r.mu.Unlock()
	return e, nil
}

// get returns the owner's session. Sessions of other users are reported
// as missing.
func (r *SessionRegistry) get(id, owner string) (*sessionEntry, bool) {
	r.mu.Lock()
	e, ok := r.entries[id]
	r.mu.Unlock()
	if !ok || e.owner != owner {
		return nil, false
	}
	return e, true
}

// remove deletes the owner's session and reports whether it existed.
func (r *SessionRegistry) remove(id, owner string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.owner != owner {
		return false
	}
	delete(r.entries, id)
	return true
}

// Len returns the number of hosted sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts sessions idle since before now-ttl and returns how many
// were removed.
func (r *SessionRegistry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		// TryLock skips sessions with a request in flight; they are
		// by definition not idle.
		if !e.mu.TryLock() {
			continue
		}
		idle := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(r.now())
		}
	}
}

// apply runs fn on the entry's state under its lock and refreshes its
// idle timer.
func (e *sessionEntry) apply(now time.Time, fn func(*session.SessionState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.state)
	e.lastUsed = now
}
