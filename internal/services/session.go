package services

import (
	"sync"
)

// TokenHeader carries the anti-forgery token in both directions
const TokenHeader = "csrf-token"

// Session holds the anti-forgery token issued by the backend. The token is
// only ever copied from responses, never generated locally. Concurrent
// captures race and the last response to complete wins.
type Session struct {
	mu    sync.RWMutex
	token string
}

// NewSession creates a session with no token
func NewSession() *Session {
	return &Session{}
}

// Token returns the current token, "" when none was issued yet
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken overwrites the token
func (s *Session) SetToken(token string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}
