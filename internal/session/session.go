// internal/session/session.go
//
// State container for one game.
// The engine is a pure function; a Session owns the current State and
// serializes transitions so each action is observed as a single atomic
// replacement of the state.

package session

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync"
	"time"

	"github.com/robalobadob/wordle/apps/engine-server/internal/game"
)

// Session holds the live state of a single game.
type Session struct {
	ID        string    // Unique session identifier (random hex string).
	CreatedAt time.Time // When the session was started.

	engine *game.Engine
	mu     sync.Mutex // guards state and round
	state  game.State
	round  int // accepted resets so far
}

// New starts a session. If target is empty, the engine picks one.
func New(engine *game.Engine, target string) (*Session, error) {
	st, err := engine.New(target)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        randomID(),
		CreatedAt: time.Now().UTC(),
		engine:    engine,
		state:     st,
	}, nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies one action. It returns the resulting state, the key of
// the game the action applied to (the new game for an accepted Reset) and
// the reason the action was rejected, if it was.
func (s *Session) Dispatch(a game.Action) (game.State, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.engine.Step(s.state, a)
	if _, ok := a.(game.Reset); ok && err == nil {
		s.round++
	}
	s.state = next
	return next, s.key(), err
}

// Key identifies the game currently being played in the session. It is
// the session ID until the first reset, then ID.1, ID.2, and so on.
func (s *Session) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key()
}

func (s *Session) key() string {
	if s.round == 0 {
		return s.ID
	}
	return s.ID + "." + strconv.Itoa(s.round)
}

// SubmitWord replaces the current row with word and submits it, returning
// the new state and the key of the game it was scored in.
// It is all or nothing: if any step is rejected the state is left as it was.
func (s *Session) SubmitWord(word string) (game.State, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	var err error
	for len(st.Input) > 0 {
		if st, err = s.engine.Step(st, game.Backspace{}); err != nil {
			return s.state, s.key(), err
		}
	}
	for _, r := range word {
		if st, err = s.engine.Step(st, game.EnterLetter{Letter: r}); err != nil {
			return s.state, s.key(), err
		}
	}
	if st, err = s.engine.Step(st, game.SubmitGuess{}); err != nil {
		return s.state, s.key(), err
	}
	s.state = st
	return st, s.key(), nil
}

// randomID returns a compact 16‑hex‑char identifier.
// Collisions are extremely unlikely given crypto/rand entropy.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
