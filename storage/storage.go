// Package storage provides a SQLite-backed library of saved puzzles.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ThunderKey/sudoku-solver/sudoku"
)

// ErrNotFound reports a missing puzzle ID.
var ErrNotFound = errors.New("puzzle not found")

// SavedPuzzle is one library entry.
type SavedPuzzle struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	Grid      sudoku.Grid      `json:"grid"`
	Givens    sudoku.GivenMask `json:"given_cells"`
	CreatedAt time.Time        `json:"created_at"`
}

// Store handles SQLite database operations for the puzzle library.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		grid TEXT NOT NULL,
		givens TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_puzzles_created ON puzzles(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts or replaces a puzzle. A blank ID gets a fresh UUID; a zero
// CreatedAt gets the current time. The stored puzzle is returned.
func (s *Store) Save(ctx context.Context, p SavedPuzzle) (SavedPuzzle, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	grid, err := json.Marshal(p.Grid)
	if err != nil {
		return p, fmt.Errorf("encode grid: %w", err)
	}
	givens, err := json.Marshal(p.Givens)
	if err != nil {
		return p, fmt.Errorf("encode givens: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO puzzles (id, name, grid, givens, created_at) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(grid), string(givens), p.CreatedAt)
	if err != nil {
		return p, fmt.Errorf("save puzzle: %w", err)
	}
	return p, nil
}

// Load returns the puzzle with the given ID.
func (s *Store) Load(ctx context.Context, id string) (SavedPuzzle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, grid, givens, created_at FROM puzzles WHERE id = ?`, id)
	return scanPuzzle(row.Scan)
}

// List returns all puzzles, newest first.
func (s *Store) List(ctx context.Context) ([]SavedPuzzle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, grid, givens, created_at FROM puzzles ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list puzzles: %w", err)
	}
	defer rows.Close()

	var out []SavedPuzzle
	for rows.Next() {
		p, err := scanPuzzle(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete removes a puzzle.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM puzzles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete puzzle: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func scanPuzzle(scan func(dest ...any) error) (SavedPuzzle, error) {
	var p SavedPuzzle
	var grid, givens string
	if err := scan(&p.ID, &p.Name, &grid, &givens, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, ErrNotFound
		}
		return p, fmt.Errorf("scan puzzle: %w", err)
	}
	if err := json.Unmarshal([]byte(grid), &p.Grid); err != nil {
		return p, fmt.Errorf("decode grid: %w", err)
	}
	if err := json.Unmarshal([]byte(givens), &p.Givens); err != nil {
		return p, fmt.Errorf("decode givens: %w", err)
	}
	return p, nil
}
