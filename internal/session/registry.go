package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nahidhasan98/changelog-viewer/internal/errors"
	"github.com/nahidhasan98/changelog-viewer/internal/logger"
)

// Registry keeps the sessions of the HTTP service in memory, keyed by a
// random id. Sessions idle for longer than the TTL are evicted.
type Registry struct {
	newSession func() *Session
	ttl        time.Duration
	max        int
	log        *logger.Logger
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// NewRegistry creates a registry. newSession builds each session; max <= 0
// means unbounded and ttl <= 0 disables eviction.
func NewRegistry(newSession func() *Session, ttl time.Duration, max int, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		newSession: newSession,
		ttl:        ttl,
		max:        max,
		log:        log,
		now:        time.Now,
		sessions:   make(map[string]*entry),
	}
}

// Create registers a new session and returns its id
func (r *Registry) Create() (string, *Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictLocked()
	if r.max > 0 && len(r.sessions) >= r.max {
		return "", nil, errors.New(errors.ErrCodeServiceUnavailable, "Too many active sessions")
	}

	id := uuid.NewString()
	s := r.newSession()
	r.sessions[id] = &entry{session: s, lastSeen: r.now()}

	r.log.Debugf("Session %s created (%d active)", id, len(r.sessions))
	return id, s, nil
}

// Get returns the session with id and marks it as used
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok || r.expired(e) {
		return nil, errors.SessionNotFound(id)
	}
	e.lastSeen = r.now()
	return e.session, nil
}

// Delete removes a session. Reports whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of registered sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict removes idle sessions and returns how many were removed
func (r *Registry) Evict() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictLocked()
}

// Run evicts idle sessions every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				r.log.Infof("Evicted %d idle session(s)", n)
			}
		}
	}
}

func (r *Registry) evictLocked() int {
	evicted := 0
	for id, e := range r.sessions {
		if r.expired(e) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (r *Registry) expired(e *entry) bool {
	return r.ttl > 0 && r.now().Sub(e.lastSeen) > r.ttl
}
