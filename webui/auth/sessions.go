package auth

import (
	"sync"
	"time"

	"github.com/giftwork2016-hub/adobe-PS-AI-plugin/core"
)

// SessionStore is a thread-safe in-memory store of active panel sessions.
// Sessions do not survive a restart; a restart simply requires logging in
// again.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]core.Session
	duration time.Duration
}

// NewSessionStore creates a store with the given session lifetime.
// A non-positive duration uses core.DefaultSessionDuration.
func NewSessionStore(duration time.Duration) *SessionStore {
	if duration <= 0 {
		duration = core.DefaultSessionDuration
	}
	return &SessionStore{
		sessions: make(map[string]core.Session),
		duration: duration,
	}
}

// Create generates a new session and returns its ID.
func (s *SessionStore) Create() (string, error) {
	id, err := core.GenerateSessionID()
	if err != nil {
		return "", err
	}
	session := core.NewSessionWithDuration(id, s.duration)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = session
	return id, nil
}

// Validate reports whether id names a live session. Expired sessions are
// removed on sight.
func (s *SessionStore) Validate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return false
	}
	if session.IsExpired() {
		delete(s.sessions, id)
		return false
	}
	return true
}

// Delete removes a session, if present.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// PurgeExpired removes all expired sessions and returns how many were
// removed.
func (s *SessionStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored sessions, expired or not.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
