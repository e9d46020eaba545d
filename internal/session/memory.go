package session

import (
	"context"
	"sync"
	"time"

	"islandproperties-backend/internal/models"
)

// MemoryStore keeps sessions in a process-local map keyed by token hash.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	now      func() time.Time

	sweep     time.Duration
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a MemoryStore
type Option func(*MemoryStore)

// WithClock sets the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// WithSweepInterval starts a goroutine that evicts expired sessions every d.
// A zero interval disables sweeping; expiry is still enforced on Validate.
func WithSweepInterval(d time.Duration) Option {
	return func(s *MemoryStore) { s.sweep = d }
}

// NewMemoryStore creates an empty store. Call Close to stop the sweeper.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]models.Session),
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sweep > 0 {
		go s.sweeper()
	} else {
		close(s.done)
	}
	return s
}

// Issue creates a session for the admin and returns its token
func (s *MemoryStore) Issue(_ context.Context, adminUserID string, ttl time.Duration) (string, *models.Session, error) {
	token, sess, err := NewSession(adminUserID, ttl, s.now())
	if err != nil {
		return "", nil, err
	}

	s.mu.Lock()
	s.sessions[sess.TokenHash] = *sess
	s.mu.Unlock()

	return token, sess, nil
}

// Validate returns the live session for token
func (s *MemoryStore) Validate(_ context.Context, token string) (*models.Session, error) {
	hash := HashToken(token)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[hash]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, hash)
		return nil, ErrExpired
	}
	return &sess, nil
}

// Revoke removes the session for token, if any
func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, HashToken(token))
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// DeleteExpired removes all expired sessions
func (s *MemoryStore) DeleteExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for hash, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, hash)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) sweeper() {
	defer close(s.done)
	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.DeleteExpired()
		case <-s.stop:
			return
		}
	}
}

// Close stops the sweeper and waits for it to exit. It is safe to call
// more than once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}
