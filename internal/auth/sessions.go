package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Admin identifies an authenticated administrator.
type Admin struct {
	Username string
}

type session struct {
	admin    Admin
	lastSeen time.Time
}

// SessionStore holds ephemeral admin sessions in memory. Sessions expire
// after an idle timeout and disappear with the process.
type SessionStore struct {
	sessions map[string]*session
	mu       sync.Mutex
	idle     time.Duration
}

// NewSessionStore creates a store with the given idle timeout.
func NewSessionStore(idle time.Duration) *SessionStore {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &SessionStore{
		sessions: make(map[string]*session),
		idle:     idle,
	}
}

// Create opens a session for the admin and returns its token.
func (ss *SessionStore) Create(admin Admin) string {
	token := uuid.NewString()
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = &session{admin: admin, lastSeen: time.Now()}
	return token
}

// Get resolves a token to its admin and refreshes the idle clock.
func (ss *SessionStore) Get(token string) (Admin, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	s, ok := ss.sessions[token]
	if !ok {
		return Admin{}, false
	}
	if time.Since(s.lastSeen) > ss.idle {
		delete(ss.sessions, token)
		return Admin{}, false
	}
	s.lastSeen = time.Now()
	return s.admin, true
}

// Delete closes a session. Unknown tokens are a no-op.
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// Cleanup removes idle-expired sessions and returns how many were dropped.
func (ss *SessionStore) Cleanup() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	removed := 0
	for token, s := range ss.sessions {
		if time.Since(s.lastSeen) > ss.idle {
			delete(ss.sessions, token)
			removed++
		}
	}
	return removed
}
