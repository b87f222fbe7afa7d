package session

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/prayujt/distributed-streaming/internal/model"
)

// ErrNotFound is returned by Take when the session id is absent. An id
// that was already consumed and an id that never existed are
// indistinguishable; both were removed from (or never in) the map.
var ErrNotFound = errors.New("session not found")

// Store is the process-wide registry of pending selections.
//
// A session links the choice groups produced by one /select call to a
// later /download call. Sessions are readable exactly once: Take removes
// the entry while returning it, so a second Take with the same id fails
// with ErrNotFound.
//
// Sessions live only in memory; a process restart discards them all.
type Store struct {
	mu       sync.Mutex
	sessions map[string][]model.Group
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string][]model.Group),
	}
}

// Create registers the groups under a fresh random identifier and
// returns it. The identifier is a v4 UUID; collisions are not handled
// beyond the 128 bits of randomness.
func (s *Store) Create(groups []model.Group) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = groups

	return id
}

// Take removes and returns the session's groups. The remove-and-return
// under one lock is what enforces single use.
func (s *Store) Take(id string) ([]model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.sessions, id)

	return groups, nil
}

// Len reports the number of pending sessions. Used for logging.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
