// internal/history/history.go
//
// Bookkeeping for played games.
// Only the outline of a game is recorded (owner, guess count, outcome);
// the live board stays in memory. When a signed-in user finishes a game
// their counters (games played, wins, streak) move in the same transaction.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Owner identifies who played a game: a user, or a guest by cookie id.
type Owner struct {
	UserID string
	AnonID string
}

// Game is one row of a player's history.
type Game struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Guesses    int    `json:"guesses"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

// Store reads and writes the games table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Store) stamp() string { return s.now().Format(time.RFC3339) }

// Start records a new game for owner.
func (s *Store) Start(ctx context.Context, gameID string, o Owner) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, started_at, status, guesses)
		 VALUES (?, ?, ?, ?, 'playing', 0)`,
		gameID, nullable(o.UserID), nullable(o.AnonID), s.stamp())
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// RecordGuess counts one accepted guess.
func (s *Store) RecordGuess(ctx context.Context, gameID string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE games SET guesses = guesses + 1 WHERE id=?`, gameID); err != nil {
		return fmt.Errorf("update guesses: %w", err)
	}
	return nil
}

// Finish marks a game won or lost and, for a signed-in owner, bumps
// their stats. Finishing an already finished game changes nothing.
func (s *Store) Finish(ctx context.Context, gameID string, o Owner, won bool) error {
	status := "lost"
	if won {
		status = "won"
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE games SET status=?, finished_at=? WHERE id=? AND status='playing'`,
		status, s.stamp(), gameID)
	if err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tx.Commit()
	}
	if o.UserID != "" {
		if err := bumpStats(ctx, tx, o.UserID, won); err != nil {
			return fmt.Errorf("bump stats: %w", err)
		}
	}
	return tx.Commit()
}

// bumpStats increments games played; updates wins and streak based on result (within tx).
func bumpStats(ctx context.Context, tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRowContext(ctx, `SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.ExecContext(ctx, `UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// Claim transfers a guest's games to a user account after auth.
func (s *Store) Claim(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		return fmt.Errorf("claim games: %w", err)
	}
	return nil
}

// Recent returns a user's latest games, newest first.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]Game, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, guesses, started_at, COALESCE(finished_at,'')
		 FROM games WHERE user_id=? ORDER BY started_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Game{}
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.Status, &g.Guesses, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
