package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/isnorttestingpipelines/txm-web/internal/logger"
)

const (
	// Persistence keys, carried over from the browser build.
	sessionKey = "txm_user"
	setupKey   = "txm_setup_complete"
)

// ErrInvalidSession marks a persisted blob that does not describe a usable
// session.
var ErrInvalidSession = errors.New("invalid persisted session")

// Persistence is the opaque key-value capability the store mirrors the
// session into. Absent keys are a bool false, not an error.
type Persistence interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store owns the current session. Every mutation of authentication state
// writes or clears exactly one persistence key; the in-memory transition
// and the persistence write are issued together under the lock.
type Store struct {
	mu            sync.RWMutex
	session       *Session
	authenticated bool
	persist       Persistence
	logger        *logger.Logger
}

func NewStore(persist Persistence, log *logger.Logger) *Store {
	return &Store{persist: persist, logger: log}
}

// Login replaces the current session and persists it. Calling twice with
// the same session is observationally idempotent.
func (s *Store) Login(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSession(sess)
}

func (s *Store) setSession(sess Session) {
	s.session = &sess
	s.authenticated = true

	data, err := json.Marshal(sess)
	if err != nil {
		s.logger.Error("marshal session", "error", err)
		return
	}
	if err := s.persist.Set(sessionKey, string(data)); err != nil {
		s.logger.Error("persist session", "error", err)
	}
}

// Logout clears the session and the persisted key. Safe to call when
// already logged out.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.authenticated = false
	if err := s.persist.Delete(sessionKey); err != nil {
		s.logger.Error("remove persisted session", "error", err)
	}
}

// AttachAPIKey sets the API key on the current session. A no-op when no
// session exists, so an out-of-order call cannot take the process down.
func (s *Store) AttachAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return
	}
	sess := *s.session
	sess.APIKey = key
	s.setSession(sess)
}

// Restore loads the persisted session, if any, and logs it back in. Any
// failure leaves the store logged out: a corrupted local session must
// never crash startup.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.persist.Get(sessionKey)
	if err != nil {
		s.logger.Error("read persisted session", "error", err)
		return
	}
	if !ok {
		return
	}

	sess, err := parseSession(raw)
	if err != nil {
		s.logger.Warn("discarding persisted session", "error", err)
		return
	}
	s.setSession(*sess)
}

func parseSession(raw string) (*Session, error) {
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if sess.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidSession)
	}
	return &sess, nil
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// Current returns a copy of the session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

// SetupComplete reports whether the one-time setup flow has been finished.
func (s *Store) SetupComplete() bool {
	raw, ok, err := s.persist.Get(setupKey)
	if err != nil {
		s.logger.Error("read setup marker", "error", err)
		return false
	}
	return ok && raw == "true"
}

func (s *Store) MarkSetupComplete() {
	if err := s.persist.Set(setupKey, "true"); err != nil {
		s.logger.Error("persist setup marker", "error", err)
	}
}
