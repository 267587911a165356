// Package solver defines the capability contract every solving strategy
// implements, plus the built-in search algorithms. Strategies are stateless
// across calls, which is what lets the registry share one instance across
// concurrent solve requests.
package solver

import (
	"fmt"

	"github.com/ThunderKey/sudoku-solver/sudoku"
)

// Strategy is the contract a solving algorithm implements.
//
// Solve returns a fully solved grid, or ok=false when the puzzle is
// unsatisfiable. SolveWithSteps does the same and additionally records an
// ordered trace of atomic moves. Neither mutates its input (Grid is a value
// type). A strategy with no natural step decomposition may emit just a
// start and a result step.
type Strategy interface {
	Name() string
	Description() string
	Solve(g sudoku.Grid) (sudoku.Grid, bool)
	SolveWithSteps(g sudoku.Grid) (sudoku.Grid, bool, []Step)
}

// Action tags one step of a trace. The vocabulary is closed.
type Action string

const (
	ActionStart     Action = "start"
	ActionPlace     Action = "place"
	ActionEliminate Action = "eliminate"
	ActionBacktrack Action = "backtrack"
	ActionResult    Action = "result"
)

// Move is the cell/value a step affected, if any.
type Move struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// Step is one atomic move of a strategy. Grid is the snapshot after the
// move; being a value it stays frozen while the strategy's working grid
// keeps mutating.
type Step struct {
	Grid        sudoku.Grid `json:"grid"`
	Description string      `json:"description"`
	Move        *Move       `json:"move,omitempty"`
	Action      Action      `json:"action"`
}

type trace struct {
	steps []Step
}

func (t *trace) add(g sudoku.Grid, desc string, mv *Move, a Action) {
	t.steps = append(t.steps, Step{Grid: g, Description: desc, Move: mv, Action: a})
}

func (t *trace) start(g sudoku.Grid) {
	t.add(g, "Initial puzzle state", nil, ActionStart)
}

func (t *trace) result(g sudoku.Grid) {
	t.add(g, "Puzzle solved", nil, ActionResult)
}

func (t *trace) place(g sudoku.Grid, row, col, value int) {
	t.add(g, fmt.Sprintf("Try placing %d at (%d, %d)", value, row+1, col+1),
		&Move{Row: row, Col: col, Value: value}, ActionPlace)
}

func (t *trace) backtrack(g sudoku.Grid, row, col, value int) {
	t.add(g, fmt.Sprintf("Backtrack: remove %d from (%d, %d)", value, row+1, col+1),
		&Move{Row: row, Col: col, Value: 0}, ActionBacktrack)
}
