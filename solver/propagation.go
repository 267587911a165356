package solver

import (
	"fmt"

	"github.com/ThunderKey/sudoku-solver/sudoku"
)

// Propagation applies naked-single and hidden-single eliminations until no
// round makes progress, then hands the residual grid to the heuristic
// search. Each round that changes at least one cell emits one eliminate
// step.
type Propagation struct{}

func (Propagation) Name() string { return "Constraint Propagation" }
func (Propagation) Description() string {
	return "Naked and hidden singles with heuristic search fallback"
}

func (Propagation) Solve(g sudoku.Grid) (sudoku.Grid, bool) {
	for {
		placed, dead := propagateRound(&g)
		if dead {
			return g, false
		}
		if placed == 0 {
			break
		}
	}
	if _, complete := sudoku.Validity(g); complete {
		return g, true
	}
	ok := mcvSolve(&g)
	return g, ok
}

func (Propagation) SolveWithSteps(g sudoku.Grid) (sudoku.Grid, bool, []Step) {
	t := &trace{}
	t.start(g)
	for {
		placed, first, dead := propagateRoundTrace(&g)
		if dead {
			return g, false, t.steps
		}
		if placed == 0 {
			break
		}
		t.add(g, fmt.Sprintf("Propagation round placed %d single(s)", placed), first, ActionEliminate)
	}
	if _, complete := sudoku.Validity(g); complete {
		t.result(g)
		return g, true, t.steps
	}
	ok := mcvTrace(&g, t)
	if ok {
		t.result(g)
	}
	return g, ok, t.steps
}

func propagateRound(g *sudoku.Grid) (placed int, dead bool) {
	p, _, d := propagateRoundTrace(g)
	return p, d
}

// propagateRoundTrace runs one round of naked singles then hidden singles.
// first is the first placement of the round, dead reports a cell with no
// candidates.
func propagateRoundTrace(g *sudoku.Grid) (placed int, first *Move, dead bool) {
	record := func(r, c, v int) {
		g[r][c] = v
		placed++
		if first == nil {
			first = &Move{Row: r, Col: c, Value: v}
		}
	}

	// Naked singles: cells with exactly one candidate.
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g[r][c] != 0 {
				continue
			}
			m := sudoku.CandidatesMask(*g, r, c)
			switch m.Count() {
			case 0:
				return placed, first, true
			case 1:
				record(r, c, m.Values()[0])
			}
		}
	}

	// Hidden singles: values with exactly one legal cell in a unit.
	for r := 0; r < 9; r++ {
		for v := 1; v <= 9; v++ {
			if col, n := soleColumnFor(g, r, v); n == 1 {
				record(r, col, v)
			}
		}
	}
	for c := 0; c < 9; c++ {
		for v := 1; v <= 9; v++ {
			if row, n := soleRowFor(g, c, v); n == 1 {
				record(row, c, v)
			}
		}
	}
	for b := 0; b < 9; b++ {
		for v := 1; v <= 9; v++ {
			if r, c, n := soleBoxCellFor(g, b, v); n == 1 {
				record(r, c, v)
			}
		}
	}

	return placed, first, false
}

func soleColumnFor(g *sudoku.Grid, row, v int) (col, n int) {
	for c := 0; c < 9; c++ {
		if g[row][c] == 0 && sudoku.CandidatesMask(*g, row, c).Has(v) {
			col = c
			n++
		}
	}
	return col, n
}

func soleRowFor(g *sudoku.Grid, col, v int) (row, n int) {
	for r := 0; r < 9; r++ {
		if g[r][col] == 0 && sudoku.CandidatesMask(*g, r, col).Has(v) {
			row = r
			n++
		}
	}
	return row, n
}

func soleBoxCellFor(g *sudoku.Grid, box, v int) (row, col, n int) {
	br, bc := box/3*3, box%3*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			r, c := br+dr, bc+dc
			if g[r][c] == 0 && sudoku.CandidatesMask(*g, r, c).Has(v) {
				row, col = r, c
				n++
			}
		}
	}
	return row, col, n
}
