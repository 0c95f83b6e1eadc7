// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today’s daily game
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Each player can play once per day (enforced by DB + in-memory session).
// Sessions run on the same engine as free play and are held in memory;
// the result is persisted on a win. Word selection is based on date + salt.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/engine-server/internal/daily"
	"github.com/robalobadob/wordle/apps/engine-server/internal/game"
	"github.com/robalobadob/wordle/apps/engine-server/internal/session"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]*dailySession // active sessions keyed by owner|date
	mu       sync.Mutex               // guards sessions
}

// dailySession ties an engine session to the puzzle it is playing.
type dailySession struct {
	sess   *session.Session
	puzzle daily.Puzzle
	start  time.Time
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router, db *sql.DB) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(db),
		salt:     s.cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	s.daily = dd
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns the current puzzle.
func (d *dailyServer) today() daily.Puzzle {
	return daily.For(d.srv.now(), d.salt, d.srv.lexicon.Answers())
}

// ownerID returns the authenticated user ID if logged in,
// otherwise the guest's anonymous cookie id.
func (d *dailyServer) ownerID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily/new

// newRes is returned by /daily/new.
type newRes struct {
	GameID string     `json:"gameId"`
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	State  *stateView `json:"state,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a DB row for today → return Played=true.
//   - Otherwise create/reuse an in-memory session and return GameID.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.ownerID(w, r)
	p := d.today()
	if p.Answer == "" {
		writeError(w, http.StatusServiceUnavailable, "no_answers")
		return
	}

	played, err := d.store.AlreadyPlayed(r.Context(), uid, p.Date)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("daily already played")
	}
	if played {
		writeJSON(w, http.StatusOK, newRes{Date: p.Date, Played: true})
		return
	}

	key := uid + "|" + p.Date
	d.mu.Lock()
	ds, ok := d.sessions[key]
	if !ok {
		sess, err := session.New(d.srv.engine, p.Answer)
		if err != nil {
			d.mu.Unlock()
			hlog.FromRequest(r).Error().Err(err).Str("date", p.Date).Msg("daily answer rejected")
			writeError(w, http.StatusInternalServerError, "bad_daily_answer")
			return
		}
		d.pruneLocked(p.Date)
		ds = &dailySession{sess: sess, puzzle: p, start: d.srv.now()}
		d.sessions[key] = ds
	}
	d.mu.Unlock()

	v := viewOf(ds.sess.Snapshot())
	writeJSON(w, http.StatusOK, newRes{GameID: ds.sess.ID, Date: p.Date, State: &v})
}

// pruneLocked drops sessions for any date other than today. d.mu must be held.
func (d *dailyServer) pruneLocked(today string) {
	for k, ds := range d.sessions {
		if ds.puzzle.Date != today {
			delete(d.sessions, k)
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/guess

// dailyGuessReq is the request payload for /daily/guess.
type dailyGuessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}

// dailyGuessRes is the response payload for /daily/guess.
type dailyGuessRes struct {
	Marks   []game.LetterStatus `json:"marks"`
	State   string              `json:"state"` // in_progress | won | lost | locked
	Guesses int                 `json:"guesses"`
}

// handleGuess validates and applies a guess for today's daily session.
//   - Rejects if no session matches the game id.
//   - Finished sessions answer "locked".
//   - Refused words (length, dictionary) are a 400 with the reason.
//   - Persists the result to DB on a win.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.ownerID(w, r)

	var p dailyGuessReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if p.GameID == "" {
		writeError(w, http.StatusBadRequest, "invalid")
		return
	}

	key := uid + "|" + d.today().Date
	d.mu.Lock()
	ds, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok || ds.sess.ID != p.GameID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	st, _, err := ds.sess.SubmitWord(p.Word)
	if errors.Is(err, game.ErrGameOver) {
		writeJSON(w, http.StatusOK, dailyGuessRes{Marks: []game.LetterStatus{}, State: "locked", Guesses: len(st.Guesses)})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, reasonCode(err))
		return
	}

	res := dailyGuessRes{
		Marks:   st.Guesses[len(st.Guesses)-1].Statuses(),
		State:   "in_progress",
		Guesses: len(st.Guesses),
	}
	switch st.Phase {
	case game.PhaseWon:
		res.State = "won"
		elapsed := int(d.srv.now().Sub(ds.start).Milliseconds())
		if err := d.store.InsertResult(r.Context(), daily.Result{
			UserID: uid, Date: ds.puzzle.Date, WordIndex: ds.puzzle.WordIndex, Guesses: res.Guesses, ElapsedMs: elapsed,
		}); err != nil {
			hlog.FromRequest(r).Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	case game.PhaseLost:
		res.State = "lost"
	}
	writeJSON(w, http.StatusOK, res)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.today().Date
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
