// internal/httpserver/routes_game.go
//
// HTTP routes for free play. Mounted under /game:
//   - POST /game/new           → start a game (random answer unless one is given)
//   - GET  /game/{id}          → current board
//   - POST /game/{id}/actions  → one engine action: letter, backspace, submit, reset
//   - POST /game/guess         → type and submit a whole word in one call
//
// A rejected action is not an HTTP error on /actions: the response carries
// applied=false, the reason, and the unchanged board.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/engine-server/internal/game"
	"github.com/robalobadob/wordle/apps/engine-server/internal/history"
	"github.com/robalobadob/wordle/apps/engine-server/internal/session"
	"github.com/robalobadob/wordle/apps/engine-server/internal/store"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/new", s.handleNewGame)
	r.Post("/guess", s.handleGuess)
	r.Get("/{id}", s.handleGetGame)
	r.Post("/{id}/actions", s.handleAction)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
}

// gameRes is returned by every /game endpoint that shows the board.
type gameRes struct {
	GameID  string    `json:"gameId"`
	State   stateView `json:"state"`
	Applied *bool     `json:"applied,omitempty"`
	Reason  string    `json:"reason,omitempty"`
}

// handleNewGame creates a new in-memory game and records an owner row
// (either user_id or anonymous_id) for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess, err := session.New(s.engine, req.Answer)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_answer")
		return
	}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	if err := s.history.Start(r.Context(), sess.ID, s.owner(w, r)); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("gameId", sess.ID).Msg("record game start")
	}
	writeJSON(w, http.StatusOK, gameRes{GameID: sess.ID, State: viewOf(sess.Snapshot())})
}

// handleGetGame returns the current board.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, gameRes{GameID: sess.ID, State: viewOf(sess.Snapshot())})
}

// actionReq is the payload for POST /game/{id}/actions.
type actionReq struct {
	Type   string `json:"type"`   // letter | backspace | submit | reset
	Letter string `json:"letter"` // for type=letter
	Target string `json:"target"` // optional, for type=reset
}

// action converts the payload into an engine action.
func (a actionReq) action() (game.Action, bool) {
	switch a.Type {
	case "letter":
		if utf8.RuneCountInString(a.Letter) != 1 {
			return nil, false
		}
		ch, _ := utf8.DecodeRuneInString(a.Letter)
		return game.EnterLetter{Letter: ch}, true
	case "backspace":
		return game.Backspace{}, true
	case "submit":
		return game.SubmitGuess{}, true
	case "reset":
		return game.Reset{Target: a.Target}, true
	}
	return nil, false
}

// handleAction dispatches a single engine action.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	a, ok := req.action()
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_action")
		return
	}
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}

	st, key, err := sess.Dispatch(a)
	applied := err == nil
	res := gameRes{GameID: sess.ID, State: viewOf(st), Applied: &applied}
	if err != nil {
		res.Reason = reasonCode(err)
		writeJSON(w, http.StatusOK, res)
		return
	}

	switch a.(type) {
	case game.SubmitGuess:
		s.recordGuess(r, key, st)
	case game.Reset:
		if err := s.history.Start(r.Context(), key, s.owner(w, r)); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Str("gameId", key).Msg("record game start")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Marks    []game.LetterStatus          `json:"marks"`
	State    game.Phase                   `json:"state"` // "playing" | "won" | "lost"
	Keyboard map[string]game.LetterStatus `json:"keyboard"`
	Answer   string                       `json:"answer,omitempty"`
}

// handleGuess submits a whole word. Unlike /actions, a refused word is a 400.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.sessions.Get(r.Context(), req.GameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "store_error")
		return
	}

	st, key, err := sess.SubmitWord(req.Guess)
	if err != nil {
		writeError(w, http.StatusBadRequest, reasonCode(err))
		return
	}
	s.recordGuess(r, key, st)

	v := viewOf(st)
	writeJSON(w, http.StatusOK, guessRes{
		Marks:    st.Guesses[len(st.Guesses)-1].Statuses(),
		State:    st.Phase,
		Keyboard: v.Keyboard,
		Answer:   v.Answer,
	})
}

// recordGuess persists counters/history (best effort, non-fatal if it fails).
func (s *Server) recordGuess(r *http.Request, key string, st game.State) {
	logger := hlog.FromRequest(r)
	if err := s.history.RecordGuess(r.Context(), key); err != nil {
		logger.Warn().Err(err).Str("gameId", key).Msg("record guess")
	}
	if !st.Phase.Over() {
		return
	}
	if err := s.history.Finish(r.Context(), key, s.ownerNoCookie(r), st.Phase == game.PhaseWon); err != nil {
		logger.Warn().Err(err).Str("gameId", key).Msg("finish game")
	}
}

// owner identifies the requester for history rows, issuing an anonymous
// cookie to guests that lack one.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) history.Owner {
	if me := userFrom(r); me != nil {
		return history.Owner{UserID: me.ID}
	}
	return history.Owner{AnonID: s.ensureAnonID(w, r)}
}

// ownerNoCookie is owner without the side effect; guests yield their
// cookie id if present.
func (s *Server) ownerNoCookie(r *http.Request) history.Owner {
	if me := userFrom(r); me != nil {
		return history.Owner{UserID: me.ID}
	}
	if c, err := r.Cookie(anonCookieName); err == nil {
		return history.Owner{AnonID: c.Value}
	}
	return history.Owner{}
}
