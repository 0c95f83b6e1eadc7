package httpserver

import (
	"strings"

	"github.com/robalobadob/wordle/apps/engine-server/internal/game"
)

// letterView is one tile of a guessed row.
type letterView struct {
	Letter string            `json:"letter"`
	Status game.LetterStatus `json:"status"`
}

// stateView is the wire form of a game.State. The answer stays hidden
// until the game is over.
type stateView struct {
	Phase     game.Phase                   `json:"phase"`
	Guesses   [][]letterView               `json:"guesses"`
	Input     string                       `json:"input"`
	Keyboard  map[string]game.LetterStatus `json:"keyboard"`
	Remaining int                          `json:"remaining"`
	Answer    string                       `json:"answer,omitempty"`
}

func viewOf(st game.State) stateView {
	v := stateView{
		Phase:     st.Phase,
		Guesses:   make([][]letterView, 0, len(st.Guesses)),
		Input:     st.InputWord(),
		Keyboard:  keyboardOf(st.Keyboard),
		Remaining: st.Remaining(),
	}
	for _, g := range st.Guesses {
		row := make([]letterView, 0, len(g))
		for _, l := range g {
			row = append(row, letterView{Letter: string(l.Letter), Status: l.Status})
		}
		v.Guesses = append(v.Guesses, row)
	}
	if st.Phase.Over() {
		v.Answer = st.Target
	}
	return v
}

// keyboardOf lists only the letters that have a status.
func keyboardOf(k game.Keyboard) map[string]game.LetterStatus {
	out := make(map[string]game.LetterStatus)
	for i, st := range k {
		if st != game.StatusUnset {
			out[string(rune('a'+i))] = st
		}
	}
	return out
}

// reasonCode turns an engine rejection into a snake_case error code.
func reasonCode(err error) string {
	return strings.ReplaceAll(err.Error(), " ", "_")
}
