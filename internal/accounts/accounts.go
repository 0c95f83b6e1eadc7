// internal/accounts/accounts.go
//
// User accounts backed by SQLite.
// Responsibilities:
//   - Signup validation and bcrypt password hashing.
//   - Case-insensitive username uniqueness.
//   - Credential checks and lookups by id.

package accounts

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("user not found")
)

// ValidationError describes why a signup was refused.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

// User matches the users table shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	Streak       int       `json:"streak"`
}

// Store reads and writes users.
type Store struct {
	db   *sql.DB
	cost int
}

// NewStore wraps db. Passwords are hashed with bcrypt.DefaultCost.
func NewStore(db *sql.DB) *Store { return &Store{db: db, cost: bcrypt.DefaultCost} }

// Create validates input, checks uniqueness, hashes password, and inserts a new user.
func (s *Store) Create(ctx context.Context, username, pw string) (*User, error) {
	username = normalizeUsername(username)
	if err := validateSignup(username, pw); err != nil {
		return nil, err
	}
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	h, err := bcrypt.GenerateFromPassword([]byte(pw), s.cost)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           NewID(),
		Username:     username,
		PasswordHash: string(h),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user for a username/password pair.
func (s *Store) Authenticate(ctx context.Context, username, pw string) (*User, error) {
	u, err := s.scan(s.db.QueryRowContext(ctx, selectUser+` WHERE lower(username)=lower(?)`, normalizeUsername(username)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pw)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ByID loads a user row.
func (s *Store) ByID(ctx context.Context, id string) (*User, error) {
	return s.scan(s.db.QueryRowContext(ctx, selectUser+` WHERE id=?`, id))
}

const selectUser = `SELECT id, username, password_hash, created_at, games_played, wins, streak FROM users`

// scan converts a *sql.Row into a User.
func (s *Store) scan(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

// normalizeUsername trims whitespace.
func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return &ValidationError{"username must be 3–24 chars"}
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return &ValidationError{"username: letters, numbers, underscore only"}
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return &ValidationError{"password must be 8–100 chars"}
	}
	return nil
}

// NewID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func NewID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
