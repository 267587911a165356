package solver

import "github.com/ThunderKey/sudoku-solver/sudoku"

// Heuristic is backtracking with most-constrained-variable ordering: at each
// step it branches on the empty cell with the fewest legal candidates, ties
// broken by row-major position. Only the search order differs from plain
// backtracking; the correctness guarantees are identical, and the fixed
// tie-break keeps traces reproducible.
type Heuristic struct{}

func (Heuristic) Name() string { return "Smart Backtracking" }
func (Heuristic) Description() string {
	return "Backtracking with most-constrained-variable ordering"
}

func (Heuristic) Solve(g sudoku.Grid) (sudoku.Grid, bool) {
	ok := mcvSolve(&g)
	return g, ok
}

func (Heuristic) SolveWithSteps(g sudoku.Grid) (sudoku.Grid, bool, []Step) {
	t := &trace{}
	t.start(g)
	ok := mcvTrace(&g, t)
	if ok {
		t.result(g)
	}
	return g, ok, t.steps
}

func mcvSolve(g *sudoku.Grid) bool {
	r, c, ok := mostConstrainedCell(g)
	if !ok {
		return true
	}

	for _, v := range sudoku.Candidates(*g, r, c) {
		g[r][c] = v
		if mcvSolve(g) {
			return true
		}
		g[r][c] = 0
	}

	return false
}

func mcvTrace(g *sudoku.Grid, t *trace) bool {
	r, c, ok := mostConstrainedCell(g)
	if !ok {
		return true
	}

	for _, v := range sudoku.Candidates(*g, r, c) {
		g[r][c] = v
		t.place(*g, r, c, v)
		if mcvTrace(g, t) {
			return true
		}
		g[r][c] = 0
		t.backtrack(*g, r, c, v)
	}

	return false
}

// mostConstrainedCell returns the empty cell with the fewest candidates,
// first in row-major order on ties. ok is false when the grid is full.
// A cell with no candidates is a dead end and is returned immediately.
func mostConstrainedCell(g *sudoku.Grid) (row, col int, ok bool) {
	best := 10
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g[r][c] != 0 {
				continue
			}
			n := sudoku.CandidatesMask(*g, r, c).Count()
			if n < best {
				best, row, col, ok = n, r, c, true
				if n == 0 {
					return row, col, true
				}
			}
		}
	}
	return row, col, ok
}
