// ABOUTME: In-memory session store keyed by session id
// ABOUTME: Replaces a global current-session singleton with explicit lookup
package quiz

import "sync"

// SessionStore holds live sessions by id. The one-active-session-per-context
// rule is enforced by the caller holding exactly one live id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Put stores a session under its id.
func (st *SessionStore) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// Get returns the session with the given id, or ErrNoActiveSession.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return s, nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
