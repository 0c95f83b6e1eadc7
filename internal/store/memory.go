// internal/store/memory.go
//
// In-memory store of live game sessions.
// In-progress games are not persisted; state is lost when the process
// restarts.
//
// Characteristics:
//   - Stores *session.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - ErrNotFound is returned for missing IDs.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordle/apps/engine-server/internal/session"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Store defines the interface for holding live sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete forgets a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions map
	sessions map[string]*session.Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
