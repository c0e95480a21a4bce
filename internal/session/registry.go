package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry is the process-wide view_id -> *Session map, spec.md §9's
// design note. Grounded on the teacher's pane-ID bookkeeping in
// internal/app/tabs.go, generalized to a uuid-keyed table shared across
// the whole process rather than per-tab pane indices.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry allocates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Register adds sess under viewID, minting a uuid when viewID is empty.
// Returns the id actually used.
func (r *Registry) Register(viewID string, sess *Session) string {
	if viewID == "" {
		viewID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[viewID] = sess
	return viewID
}

// Get looks up a session by view id.
func (r *Registry) Get(viewID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[viewID]
	return sess, ok
}

// Deregister removes a session from the table, spec.md §4.8's
// STOPPING -> DONE "deregister" step.
func (r *Registry) Deregister(viewID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, viewID)
}

// Len reports the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ViewIDs returns a snapshot of all currently registered view ids.
func (r *Registry) ViewIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}
