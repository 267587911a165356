package solver

import "github.com/ThunderKey/sudoku-solver/sudoku"

// Backtracking scans cells in row-major order, picks the first empty cell,
// tries digits ascending, and undoes on failure. If a solution exists it
// finds one; it terminates by full assignment or exhaustion.
type Backtracking struct{}

func (Backtracking) Name() string        { return "Backtracking Solver" }
func (Backtracking) Description() string { return "Classic recursive backtracking algorithm" }

func (Backtracking) Solve(g sudoku.Grid) (sudoku.Grid, bool) {
	ok := backtrackingSolve(&g, 0, 0)
	return g, ok
}

func (Backtracking) SolveWithSteps(g sudoku.Grid) (sudoku.Grid, bool, []Step) {
	t := &trace{}
	t.start(g)
	ok := backtrackingTrace(&g, t)
	if ok {
		t.result(g)
	}
	return g, ok, t.steps
}

func backtrackingSolve(g *sudoku.Grid, r, c int) bool {
	r, c, solved := nextEmptyCell(g, r, c)
	if solved {
		return true
	}

	for v := 1; v <= 9; v++ {
		if !placeOK(g, r, c, v) {
			continue
		}
		g[r][c] = v
		if backtrackingSolve(g, r, c) {
			return true
		}
		g[r][c] = 0 // backtracking
	}

	return false
}

func backtrackingTrace(g *sudoku.Grid, t *trace) bool {
	r, c, solved := nextEmptyCell(g, 0, 0)
	if solved {
		return true
	}

	for v := 1; v <= 9; v++ {
		if !placeOK(g, r, c, v) {
			continue
		}
		g[r][c] = v
		t.place(*g, r, c, v)
		if backtrackingTrace(g, t) {
			return true
		}
		g[r][c] = 0
		t.backtrack(*g, r, c, v)
	}

	return false
}

func nextEmptyCell(g *sudoku.Grid, row, col int) (r, c int, solved bool) {
	for ; row < 9; row++ {
		for ; col < 9; col++ {
			if g[row][col] == 0 {
				return row, col, false
			}
		}
		col = 0
	}
	return 0, 0, true
}

func placeOK(g *sudoku.Grid, row, col, digit int) bool {
	for i := 0; i < 9; i++ {
		if g[row][i] == digit ||
			g[i][col] == digit ||
			g[row/3*3+i/3][col/3*3+i%3] == digit {
			return false
		}
	}
	return true
}
