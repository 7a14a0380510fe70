package shell

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ozzus/hopcraft/internal/application/forms"
	derr "github.com/ozzus/hopcraft/internal/domain/errors"
)

// Store keeps sessions in memory. Every mutation runs under the store lock and callers only
// ever receive copies.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*State
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*State),
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) Create() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	st := NewState(s.newID(), forms.Today(now))
	st.LastSeen = now
	s.sessions[st.ID] = &st
	return st
}

func (s *Store) Get(id string) (State, error) {
	const op = "shell.Store.Get"

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return State{}, fmt.Errorf("%s: %w", op, derr.ErrSessionNotFound)
	}
	st.LastSeen = s.now()
	return *st, nil
}

// Update applies fn to the session under the lock and returns the resulting copy.
func (s *Store) Update(id string, fn func(st *State)) (State, error) {
	const op = "shell.Store.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[id]
	if !ok {
		return State{}, fmt.Errorf("%s: %w", op, derr.ErrSessionNotFound)
	}
	fn(st)
	st.LastSeen = s.now()
	return *st, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Evict drops sessions idle for longer than the TTL and reports how many were removed.
func (s *Store) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, st := range s.sessions {
		if st.LastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run evicts on every tick until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Evict()
		}
	}
}
