package solver

import (
	"reflect"
	"testing"

	"github.com/ThunderKey/sudoku-solver/sudoku"
)

func builtins() []Strategy {
	return []Strategy{Backtracking{}, Heuristic{}, Propagation{}, BruteForce{}}
}

func TestStrategySoundness(t *testing.T) {
	for _, s := range builtins() {
		t.Run(s.Name(), func(t *testing.T) {
			got, ok := s.Solve(classicPuzzle)
			if !ok {
				t.Fatal("Solve() reported no solution for a solvable puzzle")
			}
			valid, complete := sudoku.Validity(got)
			if !valid || !complete {
				t.Fatalf("Solve() result valid=%v complete=%v, want both true", valid, complete)
			}
			// The solution must agree with every originally filled cell.
			for r := 0; r < 9; r++ {
				for c := 0; c < 9; c++ {
					if v := classicPuzzle[r][c]; v != 0 && got[r][c] != v {
						t.Errorf("cell (%d,%d) changed from %d to %d", r, c, v, got[r][c])
					}
				}
			}
		})
	}
}

func TestStrategyUnsolvable(t *testing.T) {
	for _, s := range builtins() {
		t.Run(s.Name(), func(t *testing.T) {
			if _, ok := s.Solve(unsolvablePuzzle); ok {
				t.Error("Solve() reported a solution for an unsolvable puzzle")
			}
			if _, ok, _ := s.SolveWithSteps(unsolvablePuzzle); ok {
				t.Error("SolveWithSteps() reported a solution for an unsolvable puzzle")
			}
		})
	}
}

func TestStrategyMetadata(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range builtins() {
		if s.Name() == "" || s.Description() == "" {
			t.Errorf("%T has empty metadata", s)
		}
		if seen[s.Name()] {
			t.Errorf("duplicate strategy name %q", s.Name())
		}
		seen[s.Name()] = true
	}
}

func TestHeuristicDeterministicTrace(t *testing.T) {
	_, _, first := Heuristic{}.SolveWithSteps(classicPuzzle)
	_, _, second := Heuristic{}.SolveWithSteps(classicPuzzle)
	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over the same grid produced different traces")
	}
}

func TestMostConstrainedCellTieBreak(t *testing.T) {
	// All empty cells of an empty grid have 9 candidates; the tie must go
	// to the first cell in row-major order.
	var g sudoku.Grid
	r, c, ok := mostConstrainedCell(&g)
	if !ok || r != 0 || c != 0 {
		t.Errorf("mostConstrainedCell() = (%d, %d, %v), want (0, 0, true)", r, c, ok)
	}
}

func TestMostConstrainedCellPrefersDeadEnd(t *testing.T) {
	// (0,8) has a single candidate (9), but (5,0) later in row-major order
	// has none: row 5 rules out 2 through 9 and column 0 holds the 1. The
	// pick must be the strictly fewest-candidate cell.
	var g sudoku.Grid
	g[0] = [9]int{1, 2, 3, 4, 5, 6, 7, 8, 0}
	g[5] = [9]int{0, 3, 4, 5, 6, 7, 8, 9, 2}

	r, c, ok := mostConstrainedCell(&g)
	if !ok || r != 5 || c != 0 {
		t.Errorf("mostConstrainedCell() = (%d, %d, %v), want (5, 0, true)", r, c, ok)
	}
}

func TestPropagationSolvesClassicWithoutSearchSteps(t *testing.T) {
	// The classic puzzle yields to singles alone: the trace must contain
	// eliminate rounds and no place/backtrack steps.
	got, ok, steps := Propagation{}.SolveWithSteps(classicPuzzle)
	if !ok {
		t.Fatal("SolveWithSteps() reported no solution")
	}
	if valid, complete := sudoku.Validity(got); !valid || !complete {
		t.Fatal("SolveWithSteps() returned an unsolved grid")
	}

	var eliminates int
	for _, step := range steps {
		switch step.Action {
		case ActionEliminate:
			eliminates++
		case ActionPlace, ActionBacktrack:
			t.Errorf("unexpected search step %q on a singles-solvable puzzle", step.Action)
		}
	}
	if eliminates == 0 {
		t.Error("expected at least one eliminate round")
	}
}

func TestPropagationFallsBackToSearch(t *testing.T) {
	// A single given leaves nothing for singles to do; the residual goes
	// to the heuristic search.
	var g sudoku.Grid
	g[0][0] = 1

	got, ok := Propagation{}.Solve(g)
	if !ok {
		t.Fatal("Solve() reported no solution")
	}
	if valid, complete := sudoku.Validity(got); !valid || !complete {
		t.Error("fallback search returned an unsolved grid")
	}
	if got[0][0] != 1 {
		t.Error("fallback search changed a given cell")
	}
}

func TestBruteForceMinimalTrace(t *testing.T) {
	// Nearly complete grid keeps the reference search fast.
	g := classicSolution()
	g[8][8] = 0
	g[0][2] = 0

	_, ok, steps := BruteForce{}.SolveWithSteps(g)
	if !ok {
		t.Fatal("SolveWithSteps() reported no solution")
	}
	if len(steps) != 2 {
		t.Fatalf("trace length = %d, want start + result", len(steps))
	}
	if steps[0].Action != ActionStart || steps[1].Action != ActionResult {
		t.Errorf("trace actions = %q, %q; want start, result", steps[0].Action, steps[1].Action)
	}
}

func TestStepSnapshotsAreFrozen(t *testing.T) {
	_, _, steps := Heuristic{}.SolveWithSteps(classicPuzzle)
	// Each place step's snapshot must still contain its own move after the
	// working grid has long since moved on.
	for i, step := range steps {
		if step.Action != ActionPlace {
			continue
		}
		if step.Grid[step.Move.Row][step.Move.Col] != step.Move.Value {
			t.Errorf("step %d snapshot does not contain its own move", i)
		}
	}
}

func classicSolution() sudoku.Grid {
	g, ok := Backtracking{}.Solve(classicPuzzle)
	if !ok {
		panic("classic puzzle must be solvable")
	}
	return g
}
