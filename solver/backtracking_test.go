package solver

import (
	"testing"

	"github.com/ThunderKey/sudoku-solver/sudoku"
)

// classicPuzzle has exactly one solution; its first row solves to
// 5 3 4 6 7 8 9 1 2.
var classicPuzzle = sudoku.Grid{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

// unsolvablePuzzle has no conflicts, but (0,8) needs a 9 and the column
// already holds one.
var unsolvablePuzzle = func() sudoku.Grid {
	var g sudoku.Grid
	g[0] = [9]int{1, 2, 3, 4, 5, 6, 7, 8, 0}
	g[2][8] = 9
	return g
}()

func TestBacktrackingSolve(t *testing.T) {
	var s Backtracking

	got, ok := s.Solve(classicPuzzle)
	if !ok {
		t.Fatal("Solve() reported no solution for a solvable puzzle")
	}
	valid, complete := sudoku.Validity(got)
	if !valid || !complete {
		t.Errorf("Solve() result valid=%v complete=%v, want both true", valid, complete)
	}
	wantRow0 := [9]int{5, 3, 4, 6, 7, 8, 9, 1, 2}
	if got[0] != wantRow0 {
		t.Errorf("Solve() row 0 = %v, want %v", got[0], wantRow0)
	}
}

func TestBacktrackingUnsolvable(t *testing.T) {
	var s Backtracking
	if _, ok := s.Solve(unsolvablePuzzle); ok {
		t.Error("Solve() reported a solution for an unsolvable puzzle")
	}
}

func TestBacktrackingDoesNotMutateInput(t *testing.T) {
	in := classicPuzzle
	Backtracking{}.Solve(in)
	if in != classicPuzzle {
		t.Error("Solve() mutated its input")
	}
}

func TestBacktrackingSteps(t *testing.T) {
	got, ok, steps := Backtracking{}.SolveWithSteps(classicPuzzle)
	if !ok {
		t.Fatal("SolveWithSteps() reported no solution")
	}
	if len(steps) < 2 {
		t.Fatalf("SolveWithSteps() trace length = %d, want at least start and result", len(steps))
	}
	if steps[0].Action != ActionStart {
		t.Errorf("first step action = %q, want %q", steps[0].Action, ActionStart)
	}
	if steps[0].Grid != classicPuzzle {
		t.Error("start step must snapshot the input grid")
	}
	last := steps[len(steps)-1]
	if last.Action != ActionResult {
		t.Errorf("last step action = %q, want %q", last.Action, ActionResult)
	}
	if last.Grid != got {
		t.Error("result step must snapshot the solved grid")
	}
	for i, step := range steps {
		switch step.Action {
		case ActionStart, ActionPlace, ActionBacktrack, ActionResult:
		default:
			t.Errorf("step %d has action %q outside the backtracking vocabulary", i, step.Action)
		}
		if step.Action == ActionPlace && step.Move == nil {
			t.Errorf("step %d: place without a move", i)
		}
	}
}
