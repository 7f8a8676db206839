package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"myaccount/internal/account"
	apperrors "myaccount/internal/errors"
)

type memorySession struct {
	// mu serializes transitions of this session only
	mu        sync.Mutex
	state     *account.State
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory. The store mutex guards the
// map and expiry times; each session has its own lock, so a slow transition
// blocks only its own session. Expired sessions stay in the map until Sweep.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, state *account.State) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.sessions[id] = &memorySession{state: state, expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemorySessionStore) Update(ctx context.Context, id string, fn func(*account.State) error) error {
	sess, err := s.touch(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.state)
}

// touch finds a live session and slides its expiry
func (s *MemorySessionStore) touch(id string) (*memorySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.now().After(sess.expiresAt) {
		return nil, apperrors.ErrSessionNotFound
	}
	sess.expiresAt = s.now().Add(s.ttl)
	return sess, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.now().After(sess.expiresAt) {
		return apperrors.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Sweep drops expired sessions and reports how many were removed
func (s *MemorySessionStore) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored sessions, expired ones included until swept
func (s *MemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemorySessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*memorySession)
	return nil
}
