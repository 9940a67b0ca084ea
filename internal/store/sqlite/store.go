// Package sqlite persists the bookmark set in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

// Store keeps bookmarks in a single table, one row per bookmark.
type Store struct {
	db        *sql.DB
	recovered string
}

// Open creates a Store with the given database path, creating tables if
// they don't exist. ":memory:" opens a shared in-memory database.
//
// A file that is not a SQLite database, or is corrupt, is renamed to
// "<path>.corrupt-<unix>" and replaced by an empty database; Recovered
// reports the new name of the old file.
func Open(dbPath string) (*Store, error) {
	s, err := open(dbPath)
	if err == nil || dbPath == ":memory:" || !isCorrupt(err) {
		return s, err
	}

	aside := fmt.Sprintf("%s.corrupt-%d", dbPath, time.Now().Unix())
	if rerr := os.Rename(dbPath, aside); rerr != nil {
		return nil, fmt.Errorf("move corrupt database aside: %w (open: %v)", rerr, err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}

	s, err = open(dbPath)
	if err != nil {
		return nil, err
	}
	s.recovered = aside
	return s, nil
}

// Recovered returns where a corrupt database file was moved by Open, or "".
func (s *Store) Recovered() string {
	return s.recovered
}

// isCorrupt reports whether err comes from a file SQLite cannot read as a database.
func isCorrupt(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	}
	return false
}

func open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookmarks (
		position INTEGER PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		link TEXT NOT NULL UNIQUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name identifies the backend in logs and /infra.
func (s *Store) Name() string {
	return "sqlite"
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Read returns the bookmarks in insertion order.
func (s *Store) Read(ctx context.Context) ([]domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT type, title, link FROM bookmarks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := []domain.Bookmark{}
	for rows.Next() {
		var b domain.Bookmark
		if err := rows.Scan(&b.Type, &b.Title, &b.Link); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	return out, nil
}

// Write replaces the whole table inside one transaction.
func (s *Store) Write(ctx context.Context, bookmarks []domain.Bookmark) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after Commit
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookmarks`); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO bookmarks (position, type, title, link) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, b := range bookmarks {
		if _, err := stmt.ExecContext(ctx, i, b.Type, b.Title, b.Link); err != nil {
			return fmt.Errorf("insert bookmark %q: %w", b.Link, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bookmarks: %w", err)
	}
	return nil
}
