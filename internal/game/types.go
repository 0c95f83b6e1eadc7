// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - LetterStatus: per-letter result of a guess, also used by the keyboard.
//   - Phase: playing / won / lost.
//   - ScoredLetter, Guess, Keyboard: the scored rows and cumulative keyboard.
//   - State: the value the engine transitions.
//   - Action: the four inputs the engine understands.

package game

import "strings"

const (
	// WordLength is the number of letters in every target and guess.
	WordLength = 5
	// MaxGuesses is the number of rows on the board.
	MaxGuesses = 6
)

// LetterStatus is the evaluation of a letter.
// Values are ordered: Unset < Absent < Present < Correct. A keyboard entry
// only ever moves up this order.
type LetterStatus uint8

const (
	StatusUnset LetterStatus = iota
	StatusAbsent
	StatusPresent
	StatusCorrect
)

var statusNames = [...]string{"", "absent", "present", "correct"}

func (s LetterStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// MarshalText renders the status by name so it reads well in JSON.
func (s LetterStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Phase is the overall outcome state of a game.
type Phase uint8

const (
	PhaseRunning Phase = iota
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "playing"
	}
}

// MarshalText renders the phase as "playing", "won" or "lost".
func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Over reports whether the phase is terminal.
func (p Phase) Over() bool { return p != PhaseRunning }

// ScoredLetter pairs a guessed letter with its feedback.
type ScoredLetter struct {
	Letter byte
	Status LetterStatus
}

// Guess is one scored row.
type Guess [WordLength]ScoredLetter

// Word returns the letters of the row as a string.
func (g Guess) Word() string {
	var b strings.Builder
	for _, l := range g {
		b.WriteByte(l.Letter)
	}
	return b.String()
}

// Statuses returns the per-position statuses of the row.
func (g Guess) Statuses() []LetterStatus {
	out := make([]LetterStatus, len(g))
	for i, l := range g {
		out[i] = l.Status
	}
	return out
}

// Solved reports whether every letter of g is Correct.
func (g Guess) Solved() bool {
	for _, l := range g {
		if l.Status != StatusCorrect {
			return false
		}
	}
	return true
}

// Keyboard is the best-known status of every letter a–z.
type Keyboard [26]LetterStatus

// Status returns the keyboard status for a lowercase letter.
// Anything outside a–z is Unset.
func (k Keyboard) Status(letter byte) LetterStatus {
	if letter < 'a' || letter > 'z' {
		return StatusUnset
	}
	return k[letter-'a']
}

// upgrade records s for letter unless the keyboard already knows better.
func (k *Keyboard) upgrade(letter byte, s LetterStatus) {
	if s > k[letter-'a'] {
		k[letter-'a'] = s
	}
}

// State holds a single game. It is a value: the engine returns a new State
// instead of changing the one it was given.
type State struct {
	Target   string   // The word to guess (always lowercase, WordLength letters).
	Phase    Phase    // Running until won or lost.
	Guesses  []Guess  // Accepted guesses, oldest first.
	Input    []byte   // Letters typed for the current row.
	Keyboard Keyboard // Cumulative letter statuses.
}

// NewState returns a fresh game for target.
// The target is lowercased; it must then be WordLength letters a–z.
func NewState(target string) (State, error) {
	t := strings.ToLower(strings.TrimSpace(target))
	if !IsWord(t) {
		return State{}, ErrInvalidTarget
	}
	return State{Target: t, Guesses: []Guess{}, Input: []byte{}}, nil
}

// Remaining returns how many guesses are left.
func (s State) Remaining() int { return MaxGuesses - len(s.Guesses) }

// InputWord returns the current row as a string.
func (s State) InputWord() string { return string(s.Input) }

// clone copies the slices so that the returned state shares no backing
// array with s.
func (s State) clone() State {
	c := s
	c.Guesses = append(make([]Guess, 0, len(s.Guesses)+1), s.Guesses...)
	c.Input = append(make([]byte, 0, WordLength), s.Input...)
	return c
}

// Action is an input to the engine. The set of actions is closed.
type Action interface {
	action()
}

// EnterLetter types a letter into the current row.
type EnterLetter struct{ Letter rune }

// Backspace removes the last typed letter.
type Backspace struct{}

// SubmitGuess submits the current row.
type SubmitGuess struct{}

// Reset starts a new game. An empty Target draws one from the word source.
type Reset struct{ Target string }

func (EnterLetter) action() {}
func (Backspace) action()   {}
func (SubmitGuess) action() {}
func (Reset) action()       {}

// IsWord reports whether w is exactly WordLength lowercase letters a–z.
func IsWord(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
