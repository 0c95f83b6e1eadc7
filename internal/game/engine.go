// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Accumulate typed letters into the current row.
//   - Validate and score submitted guesses (length, dictionary).
//   - Keep the cumulative keyboard, which only ever improves.
//   - Track state transitions: playing → won/lost, and reset.
//
// Notes:
//   - The engine is a pure function of (State, Action). A rejected action
//     returns the state it was given, unchanged.
//   - The dictionary and the source of random targets are injected.

package game

import (
	"errors"
	"unicode"
)

// Rejection reasons reported by Step. Apply never surfaces them.
var (
	ErrGameOver        = errors.New("game over")
	ErrNotALetter      = errors.New("not a letter")
	ErrRowFull         = errors.New("row full")
	ErrNoGuessesLeft   = errors.New("no guesses left")
	ErrEmptyInput      = errors.New("nothing to delete")
	ErrIncompleteGuess = errors.New("not enough letters")
	ErrNotInWordList   = errors.New("not in word list")
	ErrInvalidTarget   = errors.New("invalid target word")
	ErrUnknownAction   = errors.New("unknown action")
)

// Dictionary decides whether a submitted word is acceptable.
type Dictionary interface {
	IsValidWord(word string) bool
}

// WordSource supplies targets for games started without one.
type WordSource interface {
	RandomWord() string
}

// DictionaryFunc adapts a function to Dictionary.
type DictionaryFunc func(word string) bool

func (f DictionaryFunc) IsValidWord(word string) bool { return f(word) }

// WordSourceFunc adapts a function to WordSource.
type WordSourceFunc func() string

func (f WordSourceFunc) RandomWord() string { return f() }

// Engine applies actions to game states.
// It holds no game state of its own and is safe for concurrent use.
type Engine struct {
	dict  Dictionary
	words WordSource
}

// NewEngine constructs an engine around a dictionary and a word source.
func NewEngine(dict Dictionary, words WordSource) *Engine {
	return &Engine{dict: dict, words: words}
}

// New starts a game. If target is empty, one is drawn from the word source.
func (e *Engine) New(target string) (State, error) {
	if target == "" {
		target = e.words.RandomWord()
	}
	return NewState(target)
}

// Apply returns the state that results from applying a to s.
// Rejected actions return s unchanged.
func (e *Engine) Apply(s State, a Action) State {
	next, _ := e.Step(s, a)
	return next
}

// Step is Apply plus the reason an action was rejected.
// When the returned error is non-nil the returned state is s.
func (e *Engine) Step(s State, a Action) (State, error) {
	switch a := a.(type) {
	case EnterLetter:
		return enterLetter(s, a.Letter)
	case Backspace:
		return backspace(s)
	case SubmitGuess:
		return e.submit(s)
	case Reset:
		next, err := e.New(a.Target)
		if err != nil {
			return s, err
		}
		return next, nil
	default:
		return s, ErrUnknownAction
	}
}

func enterLetter(s State, r rune) (State, error) {
	if s.Phase.Over() {
		return s, ErrGameOver
	}
	lower := unicode.ToLower(r)
	if !unicode.IsLetter(r) || lower < 'a' || lower > 'z' {
		return s, ErrNotALetter
	}
	if len(s.Guesses) >= MaxGuesses {
		return s, ErrNoGuessesLeft
	}
	if len(s.Input) >= WordLength {
		return s, ErrRowFull
	}
	next := s.clone()
	next.Input = append(next.Input, byte(lower))
	return next, nil
}

func backspace(s State) (State, error) {
	if s.Phase.Over() {
		return s, ErrGameOver
	}
	if len(s.Input) == 0 {
		return s, ErrEmptyInput
	}
	next := s.clone()
	next.Input = next.Input[:len(next.Input)-1]
	return next, nil
}

// submit scores the current row.
//
// State transitions:
//   - If the row equals the target → PhaseWon.
//   - Else if the number of guesses reaches MaxGuesses → PhaseLost.
func (e *Engine) submit(s State) (State, error) {
	if s.Phase.Over() {
		return s, ErrGameOver
	}
	if len(s.Guesses) >= MaxGuesses {
		return s, ErrNoGuessesLeft
	}
	if len(s.Input) != WordLength {
		return s, ErrIncompleteGuess
	}
	word := string(s.Input)
	if !e.dict.IsValidWord(word) {
		return s, ErrNotInWordList
	}

	scored := ScoreGuess(word, s.Target)
	next := s.clone()
	for _, l := range scored {
		next.Keyboard.upgrade(l.Letter, l.Status)
	}
	next.Guesses = append(next.Guesses, scored)
	next.Input = next.Input[:0]

	if scored.Solved() {
		next.Phase = PhaseWon
	} else if len(next.Guesses) == MaxGuesses {
		next.Phase = PhaseLost
	}
	return next, nil
}
