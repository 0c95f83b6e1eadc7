// internal/game/score.go
//
// Per-guess feedback.
// A guess is scored against the target in two passes so that repeated
// letters are never credited more often than the target holds them.

package game

// ScoreGuess implements the two‑pass Wordle scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct and consume those target positions.
//
// Pass 2:
//   - For each remaining guess letter, left to right, consume the leftmost
//     unconsumed target position holding the same letter and mark Present;
//     if there is none, mark Absent.
//
// This ensures correct behavior with repeated letters in both target and
// guess. Both words are assumed to be WordLength lowercase letters.
func ScoreGuess(guess, target string) Guess {
	var (
		out      Guess
		consumed [WordLength]bool
	)

	// First pass: exact matches.
	for i := 0; i < WordLength; i++ {
		out[i].Letter = guess[i]
		if guess[i] == target[i] {
			out[i].Status = StatusCorrect
			consumed[i] = true
		}
	}

	// Second pass: resolve presents/absents for the rest.
	for i := 0; i < WordLength; i++ {
		if out[i].Status == StatusCorrect {
			continue
		}
		out[i].Status = StatusAbsent
		for j := 0; j < WordLength; j++ {
			if !consumed[j] && target[j] == guess[i] {
				out[i].Status = StatusPresent
				consumed[j] = true
				break
			}
		}
	}
	return out
}
