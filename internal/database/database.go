// internal/database/database.go
//
// Database helpers for the Wordle server.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// Open opens (and creates if missing) a SQLite database file.
//
//   - Ensures parent directory exists for relative paths (e.g. ./data/app.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
//
// ":memory:" opens a private in-memory database on a single connection.
func Open(path string) (*sql.DB, error) {
	if path == ":memory:" {
		db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
		if err != nil {
			return nil, err
		}
		// Every new connection would get its own empty database.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies every *.sql file in migrations, in lexical order.
//
//   - Uses a _migrations table to track applied files.
//   - Each file runs inside its own transaction.
func Migrate(ctx context.Context, db *sql.DB, migrations fs.FS) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRowContext(ctx, `SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if strings.TrimSpace(string(sqlBytes)) == "" {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}
