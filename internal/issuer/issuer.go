// Package issuer is an in-memory token issuer backing the development auth
// server. Tokens are opaque random strings; nothing expires.
package issuer

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownSession     = errors.New("unknown session")
)

type Pair struct {
	Access  string
	Refresh string
}

type Service struct {
	mu       sync.Mutex
	users    map[string]string // loginID -> password
	sessions map[string]string // refresh -> current access
	newToken func() string
}

func NewService(users map[string]string) *Service {
	copied := make(map[string]string, len(users))
	for id, pw := range users {
		copied[id] = pw
	}
	return &Service{
		users:    copied,
		sessions: make(map[string]string),
		newToken: generateToken,
	}
}

// Login checks credentials and opens a new session.
func (s *Service) Login(loginID, password string) (Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.users[loginID]
	if !ok || stored != password {
		return Pair{}, ErrInvalidCredentials
	}
	pair := Pair{Access: s.newToken(), Refresh: s.newToken()}
	s.sessions[pair.Refresh] = pair.Access
	return pair, nil
}

// Refresh issues a new access token for a live session. The presented access
// token must be the latest one issued for it.
func (s *Service) Refresh(accessToken, refreshToken string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[refreshToken]
	if !ok || current != accessToken {
		return "", ErrUnknownSession
	}
	access := s.newToken()
	s.sessions[refreshToken] = access
	return access, nil
}

// Revoke ends the session identified by refreshToken.
func (s *Service) Revoke(refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, refreshToken)
}

func generateToken() string {
	return uuid.New().String()
}
