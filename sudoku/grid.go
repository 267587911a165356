// Package sudoku holds the canonical 9x9 grid model and its validation
// primitives. A Grid is a plain value type: assignment copies it, so callers
// never observe a solver mutating their input.
package sudoku

import (
	"errors"
	"fmt"
)

const (
	// Size is the side length of the grid.
	Size = 9
	// BoxSize is the side length of a 3x3 box.
	BoxSize = 3
)

var ErrOutOfRange = errors.New("out of range")

// Grid is a 9x9 puzzle. 0 marks an empty cell, 1-9 are placed digits.
type Grid [Size][Size]int

// GivenMask marks the cells that belong to the original puzzle.
type GivenMask [Size][Size]bool

// Coord identifies a single cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ParseGrid converts a raw matrix into a Grid, rejecting anything that is
// not exactly 9x9 with values in [0,9]. This is the boundary malformed
// input must not pass; strategies assume well-formed grids.
func ParseGrid(rows [][]int) (Grid, error) {
	var g Grid
	if len(rows) != Size {
		return g, fmt.Errorf("grid must have %d rows, got %d: %w", Size, len(rows), ErrOutOfRange)
	}
	for r, row := range rows {
		if len(row) != Size {
			return g, fmt.Errorf("row %d must have %d cells, got %d: %w", r, Size, len(row), ErrOutOfRange)
		}
		for c, v := range row {
			if v < 0 || v > Size {
				return g, fmt.Errorf("cell (%d,%d) value %d: %w", r, c, v, ErrOutOfRange)
			}
			g[r][c] = v
		}
	}
	return g, nil
}

// InBounds reports whether (row, col) addresses a cell.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// Set returns a copy of the grid with one cell changed. Only the coordinate
// and value range are validated; placements that create conflicts are
// accepted, so users can see and fix their mistakes.
func (g Grid) Set(row, col, value int) (Grid, error) {
	if !InBounds(row, col) {
		return g, fmt.Errorf("cell (%d,%d): %w", row, col, ErrOutOfRange)
	}
	if value < 0 || value > Size {
		return g, fmt.Errorf("value %d: %w", value, ErrOutOfRange)
	}
	g[row][col] = value
	return g, nil
}

// Cell returns the value at (row, col), or -1 if out of bounds.
func (g Grid) Cell(row, col int) int {
	if !InBounds(row, col) {
		return -1
	}
	return g[row][col]
}

// Rows returns the grid as a fresh [][]int matrix.
func (g Grid) Rows() [][]int {
	rows := make([][]int, Size)
	for r := 0; r < Size; r++ {
		row := make([]int, Size)
		copy(row, g[r][:])
		rows[r] = row
	}
	return rows
}

// GivensOf marks every non-zero cell as a given.
func GivensOf(g Grid) GivenMask {
	var m GivenMask
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			m[r][c] = g[r][c] != 0
		}
	}
	return m
}
