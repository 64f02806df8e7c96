package core

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// TokenStore persists the session token. *Database is the production implementation.
type TokenStore interface {
	SaveToken(token string, expiresAt *time.Time) error
	LoadToken() (string, *time.Time, error)
	ClearToken() error
}

// Session is the process-wide holder of the authentication token.
// It implements auth.SessionStore.
type Session struct {
	store TokenStore
	log   *logrus.Entry
	now   func() time.Time

	mu        sync.RWMutex
	token     string
	expiresAt *time.Time
}

// NewSession returns a session backed by store. A nil store keeps the token in memory only.
func NewSession(store TokenStore, log *logrus.Entry) *Session {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Session{
		store: store,
		log:   log.WithField("component", "session"),
		now:   time.Now,
	}
}

// Restore loads a previously saved token. An expired token is removed from
// storage and the session stays logged out.
func (s *Session) Restore() error {
	if s.store == nil {
		return nil
	}
	token, expiresAt, err := s.store.LoadToken()
	if err != nil {
		return err
	}
	if token != "" && expiresAt != nil && !s.now().Before(*expiresAt) {
		s.log.WithField("expires_at", expiresAt.Format(time.RFC3339)).Info("Stored session expired")
		return s.store.ClearToken()
	}
	s.mu.Lock()
	s.token = token
	s.expiresAt = expiresAt
	s.mu.Unlock()
	if token != "" {
		s.log.Debug("Restored session token")
	}
	return nil
}

// SetToken stores the token handed over by a successful login.
func (s *Session) SetToken(token string) error {
	if token == "" {
		return errors.New("session token is empty")
	}
	expiresAt := tokenExpiry(token)
	if s.store != nil {
		if err := s.store.SaveToken(token, expiresAt); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.token = token
	s.expiresAt = expiresAt
	s.mu.Unlock()

	fields := logrus.Fields{}
	if expiresAt != nil {
		fields["expires_at"] = expiresAt.Format(time.RFC3339)
	}
	s.log.WithFields(fields).Info("Session token saved")
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) ExpiresAt() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// LoggedIn reports whether a token is held and has not expired.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return false
	}
	return s.expiresAt == nil || s.now().Before(*s.expiresAt)
}

// Logout forgets the token in memory and in storage.
func (s *Session) Logout() error {
	if s.store != nil {
		if err := s.store.ClearToken(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.token = ""
	s.expiresAt = nil
	s.mu.Unlock()
	s.log.Info("Logged out")
	return nil
}

// tokenExpiry reads the exp claim of a JWT without verifying it; the server
// does the verification. Opaque tokens have no known expiry.
func tokenExpiry(token string) *time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	t := exp.Time
	return &t
}
