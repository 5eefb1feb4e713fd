// Package memory provides in-process adapters for single-replica and development deployments.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/revobooking/revo-ui/internal/domain/auth"
	"github.com/revobooking/revo-ui/internal/ports"
)

// SessionStore keeps sessions in a mutex-guarded map. Expired entries are
// dropped on read and by Sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
	now      func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domainauth.Session),
		now:      time.Now,
	}
}

// Save writes the session, replacing any previous value for the same id.
func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !s.now().Before(sess.ExpiresAt) {
		return errors.New("session is expired")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = cloneSession(sess)
	return nil
}

// Get loads a live session or returns ports.ErrSessionNotFound.
func (s *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if !s.now().Before(sess.ExpiresAt) {
		delete(s.sessions, id)
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return cloneSession(sess), nil
}

// Delete removes the session. Deleting an unknown id is not an error.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Sweep drops every expired session and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired or not.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// cloneSession copies pointer fields so callers cannot mutate stored state.
func cloneSession(sess domainauth.Session) domainauth.Session {
	if sess.Identity != nil {
		id := *sess.Identity
		sess.Identity = &id
	}
	if sess.Flash != nil {
		f := *sess.Flash
		sess.Flash = &f
	}
	return sess
}
