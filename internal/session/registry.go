// Package session keeps the per-browser view state of every active session.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

// CookieName is the cookie carrying the session id.
const CookieName = "csfinder_session"

type entry struct {
	state    domain.Session
	lastSeen time.Time
}

// Registry maps session ids to their state. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]entry
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]entry),
		now:      time.Now,
	}
}

// Create registers a fresh session and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = entry{state: domain.NewSession(), lastSeen: r.now()}
	return id
}

// Get returns the state of a session and refreshes its idle timer.
func (r *Registry) Get(id string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	e.lastSeen = r.now()
	r.sessions[id] = e
	return e.state, true
}

// Update applies fn to the current state under the registry lock.
// Unknown ids start from an empty session.
func (r *Registry) Update(id string, fn func(domain.Session) domain.Session) domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		e.state = domain.NewSession()
	}
	e.state = fn(e.state)
	e.lastSeen = r.now()
	r.sessions[id] = e
	return e.state
}

// Sweep drops sessions idle for longer than ttl and returns how many.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
