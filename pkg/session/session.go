// Package session provides an in-memory session registry. Session IDs come
// from an injected id.Generator, so they inherit its uniqueness guarantee
// and its saturation semantics.
package session

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/getidkit/idkit/internal/id"
	"github.com/getidkit/idkit/pkg/logging"
)

// Session is one live session. Values returned by the registry are copies;
// mutating them does not affect stored state.
type Session struct {
	ID         string
	Name       string
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// Registry tracks sessions for the lifetime of the process.
type Registry struct {
	gen *id.Generator
	log *slog.Logger

	mu       sync.RWMutex
	sessions map[string]Session
}

// NewRegistry creates a session registry issuing IDs from gen.
// A nil logger disables logging.
func NewRegistry(gen *id.Generator, log *slog.Logger) *Registry {
	if log == nil {
		log = logging.Nop()
	}
	return &Registry{
		gen:      gen,
		log:      log,
		sessions: make(map[string]Session),
	}
}

// Create starts a new session. Generator failure (saturation or entropy
// exhaustion) is returned unchanged so callers can match with errors.Is.
func (r *Registry) Create(name string) (Session, error) {
	sid, err := r.gen.Generate()
	if err != nil {
		return Session{}, err
	}

	now := time.Now()
	s := Session{ID: sid, Name: name, CreatedAt: now, LastSeenAt: now}

	r.mu.Lock()
	r.sessions[sid] = s
	r.mu.Unlock()

	r.log.Info("session created", "session_id", sid, "name", name)
	return s, nil
}

// Get returns the session with the given ID.
func (r *Registry) Get(sid string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sid]
	return s, ok
}

// Touch updates the session's last-seen time and returns the updated copy.
func (r *Registry) Touch(sid string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sid]
	if !ok {
		return Session{}, false
	}
	s.LastSeenAt = time.Now()
	r.sessions[sid] = s
	return s, true
}

// Delete removes a session. The ID stays issued in the generator, so it can
// never be handed out again.
func (r *Registry) Delete(sid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sid]; !ok {
		return false
	}
	delete(r.sessions, sid)
	r.log.Info("session deleted", "session_id", sid)
	return true
}

// List returns all sessions ordered by creation time, oldest first.
func (r *Registry) List() []Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
