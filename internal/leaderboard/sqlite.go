// internal/leaderboard/sqlite.go
//
// SQLite-backed leaderboard storage.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying the embedded migrations in sql/*.sql (idempotent, recorded
//     in _migrations).
//   - Get/Put/All over the scores table.

package leaderboard

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// OpenSQLite opens (and creates if missing) a SQLite database file and
// applies migrations.
//
//   - Ensures the parent directory exists for relative paths (./data/app.db).
//   - Configures busy timeout and WAL journaling.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// migrate applies every embedded sql/*.sql file in lexical order, each in
// its own transaction, skipping files already recorded in _migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
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

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
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

// SQLite stores scores in the scores table.
type SQLite struct {
	db *sql.DB
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// Get returns the score for songID.
func (s *SQLite) Get(ctx context.Context, songID int) (Score, bool, error) {
	sc := Score{SongID: songID}
	err := s.db.QueryRowContext(ctx,
		`SELECT min_guesses, achieved_at FROM scores WHERE song_id=?`, songID,
	).Scan(&sc.MinGuesses, &sc.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return Score{}, false, nil
	}
	if err != nil {
		return Score{}, false, err
	}
	return sc, true, nil
}

// Put inserts or replaces the score for sc.SongID.
func (s *SQLite) Put(ctx context.Context, sc Score) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO scores (song_id, min_guesses, achieved_at)
        VALUES (?, ?, ?)
        ON CONFLICT(song_id) DO UPDATE SET
            min_guesses = excluded.min_guesses,
            achieved_at = excluded.achieved_at`,
		sc.SongID, sc.MinGuesses, sc.Timestamp,
	)
	return err
}

// All returns every score ordered by song id.
func (s *SQLite) All(ctx context.Context) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT song_id, min_guesses, achieved_at FROM scores ORDER BY song_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Score
	for rows.Next() {
		var sc Score
		if err := rows.Scan(&sc.SongID, &sc.MinGuesses, &sc.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
