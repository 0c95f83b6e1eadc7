// internal/httpserver/routes_auth.go
//
// Authentication, profile and stats routes plus the auth middleware.
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /games/mine (require auth)
//
// Tokens are HS256 JWTs carried in a cookie or an Authorization: Bearer header.
// Guests are tracked by an anonymous cookie whose games are claimed on signup/login.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/engine-server/internal/accounts"
)

// credentialsReq is the payload for signup and login.
type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ctxUserKey is the context key type for storing the signed-in user.
type ctxUserKey struct{}

// userFrom returns the signed-in user, or nil for guests.
func userFrom(r *http.Request) *accounts.User {
	u, _ := r.Context().Value(ctxUserKey{}).(*accounts.User)
	return u
}

// mountAuthRoutes registers authentication + gated routes (/auth/*, /stats/me, /games/mine).
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.With(s.requireAuth()).Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		me := userFrom(r)
		writeJSON(w, http.StatusOK, map[string]string{"id": me.ID, "username": me.Username})
	})

	s.r.With(s.requireAuth()).Get("/stats/me", func(w http.ResponseWriter, r *http.Request) {
		me := userFrom(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"id":          me.ID,
			"gamesPlayed": me.GamesPlayed,
			"wins":        me.Wins,
			"streak":      me.Streak,
		})
	})

	s.r.With(s.requireAuth()).Get("/games/mine", func(w http.ResponseWriter, r *http.Request) {
		games, err := s.history.Recent(r.Context(), userFrom(r).ID, 50)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("recent games")
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		writeJSON(w, http.StatusOK, games)
	})
}

// handleSignup creates a new user, signs a JWT, sets auth cookie, and claims anon history.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.users.Create(r.Context(), body.Username, body.Password)
	if err != nil {
		var verr *accounts.ValidationError
		switch {
		case errors.Is(err, accounts.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "Username taken")
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Reason)
		default:
			hlog.FromRequest(r).Error().Err(err).Msg("create user")
			writeError(w, http.StatusInternalServerError, "signup_failed")
		}
		return
	}
	if !s.issueToken(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin authenticates user, sets cookie, and claims anon history.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.users.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("authenticate")
		writeError(w, http.StatusInternalServerError, "login_failed")
		return
	}
	if !s.issueToken(w, r, u) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, s.cfg.CookieName, "", time.Time{}, -1)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// issueToken signs a JWT for u, sets the auth cookie and moves any guest
// games to the account. It writes the error response itself on failure.
func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, u *accounts.User) bool {
	tok, exp, err := s.tokens.Sign(u.ID, u.Username)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setCookie(w, s.cfg.CookieName, tok, exp, 0)
	if err := s.history.Claim(r.Context(), s.ensureAnonID(w, r), u.ID); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("claim anon games")
	}
	return true
}

// --------------------------- auth middleware -------------------------------

// userFromToken resolves the bearer/cookie token to a live user.
func (s *Server) userFromToken(r *http.Request) (*accounts.User, bool) {
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return nil, false
	}
	claims, err := s.tokens.Parse(tok)
	if err != nil {
		return nil, false
	}
	// Ensure user still exists
	u, err := s.users.ByID(r.Context(), claims.ID)
	if err != nil {
		return nil, false
	}
	return u, true
}

// withOptionalAuth decorates requests with user context if a valid JWT is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := s.userFromToken(r); ok {
				r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid JWT and injects the user into request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s.bearerOrCookie(r) == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			u, ok := s.userFromToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
		})
	}
}

// ------------------------------ cookies ------------------------------------

const anonCookieName = "wordle_anon"

// ensureAnonID returns an existing anon cookie or sets a new one.
// Used to associate guest games with a stable identifier.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := accounts.NewID()
	s.setCookie(w, anonCookieName, id, s.now().Add(180*24*time.Hour), 0)
	// Later reads in the same request see the new id.
	r.AddCookie(&http.Cookie{Name: anonCookieName, Value: id})
	return id
}

// setCookie writes an HttpOnly cookie with the security attributes for the
// current environment. A negative maxAge deletes it.
func (s *Server) setCookie(w http.ResponseWriter, name, value string, exp time.Time, maxAge int) {
	secure := s.cfg.Production()
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third‑party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}
