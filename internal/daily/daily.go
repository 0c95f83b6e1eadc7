// Package daily picks the shared word of the day and keeps the results
// of the Daily Challenge.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Puzzle is the Daily Challenge for one date.
type Puzzle struct {
	Date      string
	WordIndex int
	Answer    string
}

// For returns the puzzle of the day containing t. The answer is empty
// when there are no answers to choose from.
func For(t time.Time, salt string, answers []string) Puzzle {
	p := Puzzle{Date: DateKey(t)}
	if len(answers) == 0 {
		return p
	}
	p.WordIndex = WordIndex(t, salt, len(answers))
	p.Answer = answers[p.WordIndex]
	return p
}
