// Package randomfill is a demonstration strategy living outside the
// built-in set. It registers itself at the registry extension point from
// init(), the way any separately compiled strategy module would.
package randomfill

import (
	"fmt"
	"math/rand"

	"github.com/ThunderKey/sudoku-solver/registry"
	"github.com/ThunderKey/sudoku-solver/solver"
	"github.com/ThunderKey/sudoku-solver/sudoku"
)

const (
	defaultSeed = 1
	maxAttempts = 1000
)

func init() {
	registry.RegisterExtension(func() registry.Candidate {
		return New(defaultSeed)
	})
}

// RandomFill repeatedly places random legal digits and restarts on dead
// ends, falling back to backtracking when luck runs out. Demonstration
// only. The seed is fixed at construction so runs are reproducible; no
// state is retained between calls.
type RandomFill struct {
	seed int64
}

func New(seed int64) *RandomFill { return &RandomFill{seed: seed} }

func (*RandomFill) Name() string { return "Random Fill Solver" }
func (*RandomFill) Description() string {
	return "Randomly fills cells with legal values (demonstration only)"
}

func (s *RandomFill) Solve(g sudoku.Grid) (sudoku.Grid, bool) {
	rng := rand.New(rand.NewSource(s.seed))
	if solved, ok := randomAttempts(rng, g, maxAttempts, nil); ok {
		return solved, true
	}
	return solver.Backtracking{}.Solve(g)
}

func (s *RandomFill) SolveWithSteps(g sudoku.Grid) (sudoku.Grid, bool, []solver.Step) {
	steps := []solver.Step{{Grid: g, Description: "Starting random fill", Action: solver.ActionStart}}

	rng := rand.New(rand.NewSource(s.seed))
	solved, ok := randomAttempts(rng, g, maxAttempts/10, &steps)
	if !ok {
		solved, ok = solver.Backtracking{}.Solve(g)
		if !ok {
			return g, false, steps
		}
		steps = append(steps, solver.Step{
			Grid:        solved,
			Description: "Random approach failed, solved with backtracking",
			Action:      solver.ActionResult,
		})
		return solved, true, steps
	}

	steps = append(steps, solver.Step{Grid: solved, Description: "Puzzle solved by random filling", Action: solver.ActionResult})
	return solved, true, steps
}

// randomAttempts tries to complete the grid by random legal placements,
// restarting from the input whenever a cell ends up with no candidates.
func randomAttempts(rng *rand.Rand, start sudoku.Grid, attempts int, steps *[]solver.Step) (sudoku.Grid, bool) {
	g := start
	for i := 0; i < attempts; i++ {
		empty := emptyCells(g)
		if len(empty) == 0 {
			if valid, complete := sudoku.Validity(g); valid && complete {
				return g, true
			}
			g = start
			continue
		}

		cell := empty[rng.Intn(len(empty))]
		candidates := sudoku.Candidates(g, cell.Row, cell.Col)
		if len(candidates) == 0 {
			g = start
			continue
		}

		v := candidates[rng.Intn(len(candidates))]
		g[cell.Row][cell.Col] = v
		if steps != nil {
			*steps = append(*steps, solver.Step{
				Grid:        g,
				Description: fmt.Sprintf("Randomly placed %d at (%d, %d)", v, cell.Row+1, cell.Col+1),
				Move:        &solver.Move{Row: cell.Row, Col: cell.Col, Value: v},
				Action:      solver.ActionPlace,
			})
		}
	}
	return start, false
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
