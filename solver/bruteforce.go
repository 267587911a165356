package solver

import "github.com/ThunderKey/sudoku-solver/sudoku"

// BruteForce walks the empty cells in row-major order trying every digit,
// with no pruning beyond a full-grid conflict re-check after each placement.
// It exists as the slow reference implementation for correctness
// cross-checks; step traces are reduced to start and result.
type BruteForce struct{}

func (BruteForce) Name() string { return "Brute Force Solver" }
func (BruteForce) Description() string {
	return "Tries every digit for every empty cell; reference implementation"
}

func (BruteForce) Solve(g sudoku.Grid) (sudoku.Grid, bool) {
	empty := emptyCells(g)
	ok := bruteForce(&g, empty, 0)
	return g, ok
}

func (b BruteForce) SolveWithSteps(g sudoku.Grid) (sudoku.Grid, bool, []Step) {
	t := &trace{}
	t.start(g)
	solved, ok := b.Solve(g)
	if ok {
		t.result(solved)
	}
	return solved, ok, t.steps
}

func bruteForce(g *sudoku.Grid, empty []sudoku.Coord, i int) bool {
	if i == len(empty) {
		valid, complete := sudoku.Validity(*g)
		return valid && complete
	}
	cell := empty[i]
	for v := 1; v <= 9; v++ {
		g[cell.Row][cell.Col] = v
		if valid, _ := sudoku.Validity(*g); valid && bruteForce(g, empty, i+1) {
			return true
		}
	}
	g[cell.Row][cell.Col] = 0
	return false
}

func emptyCells(g sudoku.Grid) []sudoku.Coord {
	var out []sudoku.Coord
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g[r][c] == 0 {
				out = append(out, sudoku.Coord{Row: r, Col: c})
			}
		}
	}
	return out
}
