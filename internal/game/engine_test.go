package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testEngine accepts any word in allowed and draws targets from words in order.
func testEngine(allowed []string, targets ...string) *Engine {
	set := make(map[string]bool, len(allowed))
	for _, w := range allowed {
		set[w] = true
	}
	next := 0
	return NewEngine(
		DictionaryFunc(func(w string) bool { return set[w] }),
		WordSourceFunc(func() string {
			w := targets[next%len(targets)]
			next++
			return w
		}),
	)
}

var testWords = []string{"house", "homer", "hopes", "horse", "vivid", "daddy", "crane", "abcde"}

func mustState(t *testing.T, target string) State {
	t.Helper()
	s, err := NewState(target)
	if err != nil {
		t.Fatalf("NewState(%q): %v", target, err)
	}
	return s
}

func typeWord(e *Engine, s State, word string) State {
	for _, r := range word {
		s = e.Apply(s, EnterLetter{Letter: r})
	}
	return s
}

func submitWord(t *testing.T, e *Engine, s State, word string) State {
	t.Helper()
	s = typeWord(e, s, word)
	next, err := e.Step(s, SubmitGuess{})
	if err != nil {
		t.Fatalf("submit %q: %v", word, err)
	}
	return next
}

func TestNewState(t *testing.T) {
	s, err := NewState("HOUSE")
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if s.Target != "house" || s.Phase != PhaseRunning || len(s.Guesses) != 0 || len(s.Input) != 0 {
		t.Fatalf("unexpected initial state: %+v", s)
	}
	if s.Keyboard != (Keyboard{}) {
		t.Fatalf("expected empty keyboard, got %v", s.Keyboard)
	}
	for _, bad := range []string{"", "hous", "houses", "h0use", "héllo"} {
		if _, err := NewState(bad); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("NewState(%q) err = %v, want ErrInvalidTarget", bad, err)
		}
	}
}

func TestInputRules(t *testing.T) {
	e := testEngine(testWords, "house")
	s := mustState(t, "house")

	// Uppercase letters are stored lowercase.
	s = e.Apply(s, EnterLetter{Letter: 'A'})
	if s.InputWord() != "a" {
		t.Fatalf("input = %q, want %q", s.InputWord(), "a")
	}

	// Can't submit until five letters are entered.
	next, err := e.Step(s, SubmitGuess{})
	if !errors.Is(err, ErrIncompleteGuess) {
		t.Fatalf("short submit: err=%v", err)
	}
	if diff := cmp.Diff(s, next); diff != "" {
		t.Fatalf("short submit changed state (-want +got):\n%s", diff)
	}

	// Anything but a letter is ignored.
	for _, r := range []rune{'1', '.', ';', ' ', 'é'} {
		next, err := e.Step(s, EnterLetter{Letter: r})
		if !errors.Is(err, ErrNotALetter) {
			t.Fatalf("EnterLetter(%q): err=%v", r, err)
		}
		if diff := cmp.Diff(s, next); diff != "" {
			t.Fatalf("EnterLetter(%q) changed state (-want +got):\n%s", r, diff)
		}
	}

	s = typeWord(e, s, "bcde")
	if s.InputWord() != "abcde" {
		t.Fatalf("input = %q", s.InputWord())
	}

	// Can't enter more than five letters.
	if next, err := e.Step(s, EnterLetter{Letter: 'f'}); !errors.Is(err, ErrRowFull) || next.InputWord() != "abcde" {
		t.Fatalf("sixth letter: err=%v input=%q", err, next.InputWord())
	}

	// Invalid words are refused and the input is kept for correction.
	e = testEngine([]string{"house"}, "house")
	next, err = e.Step(s, SubmitGuess{})
	if !errors.Is(err, ErrNotInWordList) {
		t.Fatalf("invalid word: err=%v", err)
	}
	if diff := cmp.Diff(s, next); diff != "" {
		t.Fatalf("invalid word changed state (-want +got):\n%s", diff)
	}
}

func TestBackspace(t *testing.T) {
	e := testEngine(testWords, "house")
	s := mustState(t, "house")

	next, err := e.Step(s, Backspace{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("backspace on empty input: err=%v", err)
	}
	if diff := cmp.Diff(s, next); diff != "" {
		t.Fatalf("backspace on empty input changed state (-want +got):\n%s", diff)
	}
	s = typeWord(e, s, "hom")
	s = e.Apply(s, Backspace{})
	if s.InputWord() != "ho" {
		t.Fatalf("input = %q, want %q", s.InputWord(), "ho")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	e := testEngine(testWords, "house")
	s := typeWord(e, mustState(t, "house"), "homer")
	before := s.clone()

	next := e.Apply(s, SubmitGuess{})
	_ = e.Apply(e.Apply(next, EnterLetter{Letter: 'x'}), Backspace{})
	_ = e.Apply(s, Backspace{})

	if diff := cmp.Diff(before, s); diff != "" {
		t.Fatalf("original state changed (-want +got):\n%s", diff)
	}
	if len(next.Guesses) != 1 || len(next.Input) != 0 {
		t.Fatalf("unexpected next state: %+v", next)
	}
}

func TestGame(t *testing.T) {
	e := testEngine(testWords, "crane")
	s := mustState(t, "house")
	kb := func(letter byte) LetterStatus { return s.Keyboard.Status(letter) }

	s = submitWord(t, e, s, "homer")
	want := []LetterStatus{C, C, A, P, A}
	if diff := cmp.Diff(want, s.Guesses[0].Statuses()); diff != "" {
		t.Fatalf("homer statuses (-want +got):\n%s", diff)
	}
	if len(s.Input) != 0 {
		t.Fatalf("input not cleared: %q", s.InputWord())
	}
	for letter, st := range map[byte]LetterStatus{'h': C, 'o': C, 'm': A, 'e': P, 'r': A} {
		if kb(letter) != st {
			t.Fatalf("after homer keyboard[%c] = %v, want %v", letter, kb(letter), st)
		}
	}

	s = submitWord(t, e, s, "hopes")
	for letter, st := range map[byte]LetterStatus{'p': A, 's': P, 'e': P, 'h': C, 'o': C} {
		if kb(letter) != st {
			t.Fatalf("after hopes keyboard[%c] = %v, want %v", letter, kb(letter), st)
		}
	}

	s = submitWord(t, e, s, "horse")
	for letter, st := range map[byte]LetterStatus{'e': C, 's': C, 'r': A} {
		if kb(letter) != st {
			t.Fatalf("after horse keyboard[%c] = %v, want %v", letter, kb(letter), st)
		}
	}
	if s.Phase != PhaseRunning {
		t.Fatalf("phase = %v, want playing", s.Phase)
	}

	s = submitWord(t, e, s, "house")
	if s.Phase != PhaseWon {
		t.Fatalf("phase = %v, want won", s.Phase)
	}
	if kb('u') != C {
		t.Fatalf("keyboard[u] = %v, want correct", kb('u'))
	}

	// Nothing but reset is accepted once the game is won.
	for _, a := range []Action{EnterLetter{Letter: 'h'}, Backspace{}, SubmitGuess{}} {
		next, err := e.Step(s, a)
		if !errors.Is(err, ErrGameOver) {
			t.Fatalf("%T after win: err=%v", a, err)
		}
		if diff := cmp.Diff(s, next); diff != "" {
			t.Fatalf("%T after win changed state (-want +got):\n%s", a, diff)
		}
	}

	fresh := e.Apply(s, Reset{Target: "crane"})
	if diff := cmp.Diff(mustState(t, "crane"), fresh); diff != "" {
		t.Fatalf("reset (-want +got):\n%s", diff)
	}
}

func TestLoss(t *testing.T) {
	e := testEngine(testWords, "crane")
	s := mustState(t, "crane")
	for i, w := range []string{"house", "homer", "hopes", "horse", "vivid"} {
		s = submitWord(t, e, s, w)
		if s.Phase != PhaseRunning || len(s.Guesses) != i+1 {
			t.Fatalf("after %q: phase=%v guesses=%d", w, s.Phase, len(s.Guesses))
		}
	}
	s = submitWord(t, e, s, "daddy")
	if s.Phase != PhaseLost || s.Remaining() != 0 {
		t.Fatalf("phase = %v remaining = %d, want lost/0", s.Phase, s.Remaining())
	}
	if next, err := e.Step(s, EnterLetter{Letter: 'a'}); !errors.Is(err, ErrGameOver) || len(next.Input) != 0 {
		t.Fatalf("typing after loss: err=%v", err)
	}
}

func TestWinOnLastGuess(t *testing.T) {
	e := testEngine(testWords, "crane")
	s := mustState(t, "crane")
	for _, w := range []string{"house", "homer", "hopes", "horse", "vivid"} {
		s = submitWord(t, e, s, w)
	}
	s = submitWord(t, e, s, "crane")
	if s.Phase != PhaseWon {
		t.Fatalf("phase = %v, want won", s.Phase)
	}
}

func TestGuardsWhenGuessesExhausted(t *testing.T) {
	// A running state with six rows can only come from outside the engine,
	// but the guards still hold.
	e := testEngine(testWords, "crane")
	s := mustState(t, "crane")
	for i := 0; i < MaxGuesses; i++ {
		s.Guesses = append(s.Guesses, ScoreGuess("house", "crane"))
	}
	if _, err := e.Step(s, EnterLetter{Letter: 'a'}); !errors.Is(err, ErrNoGuessesLeft) {
		t.Fatalf("EnterLetter err = %v", err)
	}
	s.Input = []byte("crane")
	if _, err := e.Step(s, SubmitGuess{}); !errors.Is(err, ErrNoGuessesLeft) {
		t.Fatalf("SubmitGuess err = %v", err)
	}
}

func TestKeyboardMonotonic(t *testing.T) {
	e := testEngine(testWords, "crane")
	s := mustState(t, "vivid")
	prev := s.Keyboard
	for _, w := range []string{"daddy", "abcde", "vivid"} {
		s = submitWord(t, e, s, w)
		for i := range s.Keyboard {
			if s.Keyboard[i] < prev[i] {
				t.Fatalf("after %q keyboard[%c] went %v → %v", w, 'a'+i, prev[i], s.Keyboard[i])
			}
		}
		if w == "abcde" && s.Keyboard.Status('d') != P {
			t.Fatalf("keyboard[d] = %v, want present", s.Keyboard.Status('d'))
		}
		prev = s.Keyboard
	}
	if s.Keyboard.Status('d') != C || s.Phase != PhaseWon {
		t.Fatalf("keyboard[d] = %v phase = %v, want correct/won", s.Keyboard.Status('d'), s.Phase)
	}
}

func TestReset(t *testing.T) {
	e := testEngine(testWords, "crane", "vivid")
	running := typeWord(e, mustState(t, "house"), "ho")
	lost := mustState(t, "house")
	lost.Phase = PhaseLost

	for _, s := range []State{running, lost} {
		got := e.Apply(s, Reset{Target: "CRANE"})
		if diff := cmp.Diff(mustState(t, "crane"), got); diff != "" {
			t.Fatalf("reset from %v (-want +got):\n%s", s.Phase, diff)
		}
	}

	// No target: drawn from the word source.
	got := e.Apply(running, Reset{})
	if got.Target != "crane" {
		t.Fatalf("random target = %q, want crane", got.Target)
	}
	got = e.Apply(running, Reset{})
	if got.Target != "vivid" {
		t.Fatalf("random target = %q, want vivid", got.Target)
	}

	next, err := e.Step(running, Reset{Target: "toolong"})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("bad reset target: err=%v", err)
	}
	if diff := cmp.Diff(running, next); diff != "" {
		t.Fatalf("bad reset target changed state (-want +got):\n%s", diff)
	}
}
