// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access logs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): mounted under /game.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token is present;
//     routes can still run for guests.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/engine-server/internal/accounts"
	"github.com/robalobadob/wordle/apps/engine-server/internal/auth"
	"github.com/robalobadob/wordle/apps/engine-server/internal/config"
	"github.com/robalobadob/wordle/apps/engine-server/internal/game"
	"github.com/robalobadob/wordle/apps/engine-server/internal/history"
	"github.com/robalobadob/wordle/apps/engine-server/internal/store"
	"github.com/robalobadob/wordle/apps/engine-server/internal/words"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Config   config.Config
	Lexicon  *words.Lexicon
	Sessions store.Store
	DB       *sql.DB
	Logger   zerolog.Logger
}

// Server bundles the router, the engine and the stores behind it.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	lexicon  *words.Lexicon
	engine   *game.Engine
	sessions store.Store
	users    *accounts.Store
	history  *history.Store
	tokens   *auth.Signer
	daily    *dailyServer
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      d.Config,
		lexicon:  d.Lexicon,
		engine:   game.NewEngine(d.Lexicon, d.Lexicon),
		sessions: d.Sessions,
		users:    accounts.NewStore(d.DB),
		history:  history.NewStore(d.DB),
		tokens:   auth.NewSigner(d.Config.JWTSecret, d.Config.TokenTTL()),
		now:      time.Now,
	}

	timeout := d.Config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// --- middleware ---
	s.r.Use(hlog.NewHandler(d.Logger))
	s.r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.RealIP)                // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)             // recover from panics
	s.r.Use(chimw.Timeout(timeout))      // bound handler time
	s.r.Use(jsonContentType)             // default JSON responses
	s.r.Use(cors(d.Config.ClientOrigin)) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-engine",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/{id}/actions", "POST /game/guess", "/daily/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.lexicon.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g})
	})

	// Game endpoints: optional auth (guests can play)
	s.r.With(s.withOptionalAuth()).Route("/game", s.mountGame)

	// Daily Challenge: optional auth (guests can play; progress persisted on win)
	s.mountDaily(s.r.With(s.withOptionalAuth()), d.DB)

	// Auth + profile/stats
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Handler exposes the router (useful for tests and custom http.Servers).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
