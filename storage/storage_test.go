package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ThunderKey/sudoku-solver/sudoku"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	var grid sudoku.Grid
	grid[0][0], grid[8][8] = 5, 9

	saved, err := s.Save(ctx, SavedPuzzle{Name: "classic", Grid: grid, Givens: sudoku.GivensOf(grid)})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == "" {
		t.Fatal("Save() did not assign an ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("Save() did not assign a creation time")
	}

	got, err := s.Load(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Grid != grid || got.Name != "classic" {
		t.Errorf("Load() = %+v, want saved puzzle back", got)
	}
	if !got.Givens[0][0] || got.Givens[1][1] {
		t.Errorf("Load() given mask wrong")
	}
}

func TestLoadMissing(t *testing.T) {
	s := newStore(t)
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	older := time.Now().UTC().Add(-time.Hour)
	if _, err := s.Save(ctx, SavedPuzzle{Name: "old", CreatedAt: older}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := s.Save(ctx, SavedPuzzle{Name: "new"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d puzzles, want 2", len(got))
	}
	if got[0].Name != "new" || got[1].Name != "old" {
		t.Errorf("List() order = %q, %q; want newest first", got[0].Name, got[1].Name)
	}
}

func TestDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, SavedPuzzle{Name: "doomed"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Load(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}
