// Package session holds the explicit auth/session context passed to the
// client and consoles. It replaces ambient storage reads: a session is
// initialized on login, torn down on logout, and injected where needed.
package session

import "sync"

type Session struct {
	mu    sync.RWMutex
	token string
	admin bool
}

func New() *Session {
	return &Session{}
}

func (s *Session) Login(token string, admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.admin = admin
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.admin = false
}

// Token returns the bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}
