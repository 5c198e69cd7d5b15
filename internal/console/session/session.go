// Package session holds the console's authentication state.
package session

import (
	"sync"

	"github.com/emsportal/ems/internal/client"
	"golang.org/x/oauth2"
)

// Store persists the session token between console invocations.
type Store interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Session is the single authentication state of the console. Login and
// Logout are its only transitions.
type Session struct {
	mu    sync.RWMutex
	store Store
	token string
	role  string
}

// Open restores a session from store. A missing token yields an anonymous session.
func Open(store Store) (*Session, error) {
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Session{store: store, token: token}, nil
}

func (s *Session) Login(token, role string) error {
	if err := s.store.Save(token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token, s.role = token, role
	s.mu.Unlock()
	return nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.token, s.role = "", ""
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Role is the role reported at login during this process, if any.
func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Token implements oauth2.TokenSource over the current session token.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return nil, client.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}

var _ oauth2.TokenSource = (*Session)(nil)
