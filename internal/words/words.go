// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back to embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Serve the engine as its Dictionary (IsValidWord) and WordSource (RandomWord).
//
// Word Lists:
//   - "answers": canonical solutions (exactly 5 lowercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//   1. If both AnswersFile and AllowedFile are set,
//      load answers from the first and allowed guesses from the second.
//   2. If only AllowedFile is set,
//      load that file and use it for both answers and allowed guesses.
//   3. If neither is set,
//      fall back to the lists embedded in the assets package.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z).
//   • Lists are normalized to lowercase.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/engine-server/assets"
	"github.com/robalobadob/wordle/apps/engine-server/internal/game"
)

// ErrNoAnswers is returned when the answers list ends up empty.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Files names optional word list files on disk.
type Files struct {
	AnswersFile string
	AllowedFile string
}

// Lexicon is a loaded pair of word lists. It is read-only after Load.
type Lexicon struct {
	answers    []string            // canonical answers
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
}

var (
	_ game.Dictionary = (*Lexicon)(nil)
	_ game.WordSource = (*Lexicon)(nil)
)

// Load reads the word lists described by f.
func Load(f Files) (*Lexicon, error) {
	var ansList, allowList []string
	var err error

	switch {
	// Case 1: both lists provided
	case f.AnswersFile != "" && f.AllowedFile != "":
		if ansList, err = readWordFile(f.AnswersFile); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(f.AllowedFile); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case f.AllowedFile != "":
		if allowList, err = readWordFile(f.AllowedFile); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	return New(ansList, allowList)
}

// New builds a Lexicon from in-memory lists. Entries that are not
// five letters a–z are dropped; answers are always allowed.
func New(answers, allowed []string) (*Lexicon, error) {
	ans := keepWords(answers)
	if len(ans) == 0 {
		return nil, ErrNoAnswers
	}
	l := &Lexicon{
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	for _, w := range keepWords(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return readWords(f)
}

// readWords lowercases and trims each line, keeping valid 5-letter words.
func readWords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if game.IsWord(w) {
			out = append(out, w)
		}
	}
	return out, sc.Err()
}

// keepWords normalizes a list and drops anything that is not a 5-letter word.
func keepWords(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(strings.ToLower(w))
		if game.IsWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// RandomWord returns a cryptographically random answer.
func (l *Lexicon) RandomWord() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// IsValidWord reports whether w is a valid guess (answers ∪ guesses).
func (l *Lexicon) IsValidWord(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *Lexicon) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Answers returns the canonical answer list. Callers must not modify it.
func (l *Lexicon) Answers() []string { return l.answers }

// Stats returns counts of loaded words: (answers, allowed).
func (l *Lexicon) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}
