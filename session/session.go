// Package session owns the "current puzzle" of one caller: the editable
// grid, the given mask from the original puzzle, and the recorded solve
// trace with its cursor. One caller issues one request at a time per
// session, so the session itself takes no locks.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ThunderKey/sudoku-solver/navigator"
	"github.com/ThunderKey/sudoku-solver/registry"
	"github.com/ThunderKey/sudoku-solver/sudoku"
)

// ErrGivenCell rejects edits to cells of the original puzzle. Given-ness
// constrains end users, not solvers.
var ErrGivenCell = errors.New("cell is part of the original puzzle")

// Metrics captures the cost of the last successful solve.
type Metrics struct {
	Duration  time.Duration `json:"-"`
	Solver    string        `json:"solver_name"`
	SolveMs   float64       `json:"solve_time_ms"`
	StepCount int           `json:"step_count"`
}

// SolveResult is the outcome of a solve request. Solved=false with a nil
// error is the "no solution" case: a valid negative result that leaves the
// session untouched.
type SolveResult struct {
	Solved  bool             `json:"solved"`
	State   sudoku.GridState `json:"grid_state"`
	Info    *navigator.State `json:"solution_info,omitempty"`
	Metrics *Metrics         `json:"performance_metrics,omitempty"`
}

// Session is the state of one interactive puzzle.
type Session struct {
	ID string

	grid     sudoku.Grid
	original sudoku.Grid
	givens   sudoku.GivenMask
	nav      navigator.Navigator
	version  int
	metrics  *Metrics
}

// New creates an empty session with a fresh ID.
func New() *Session {
	return &Session{ID: uuid.New().String()}
}

// Version increments on every visible state change.
func (s *Session) Version() int { return s.version }

// State snapshots the current grid.
func (s *Session) State() sudoku.GridState {
	return sudoku.State(s.grid, s.givens)
}

// LoadPuzzle installs a new puzzle; its non-zero cells become givens. Any
// recorded trace no longer matches the grid and is dropped.
func (s *Session) LoadPuzzle(g sudoku.Grid) sudoku.GridState {
	s.grid = g
	s.original = g
	s.givens = sudoku.GivensOf(g)
	s.clearSolution()
	s.version++
	return s.State()
}

// Clear empties the grid. With keepGiven the original puzzle survives and
// only user/solver cells are wiped.
func (s *Session) Clear(keepGiven bool) sudoku.GridState {
	if keepGiven {
		s.grid = s.original
	} else {
		s.grid = sudoku.Grid{}
		s.original = sudoku.Grid{}
		s.givens = sudoku.GivenMask{}
	}
	s.clearSolution()
	s.version++
	return s.State()
}

// UpdateCell writes one cell. Range errors and edits to given cells are
// rejected before any state changes; conflicting values are accepted and
// surfaced through the returned state.
func (s *Session) UpdateCell(row, col, value int) (sudoku.GridState, error) {
	if sudoku.InBounds(row, col) && s.givens[row][col] {
		return s.State(), fmt.Errorf("cell (%d,%d): %w", row, col, ErrGivenCell)
	}
	next, err := s.grid.Set(row, col, value)
	if err != nil {
		return s.State(), err
	}
	s.grid = next
	s.clearSolution()
	s.version++
	return s.State(), nil
}

// Solve runs the named strategy against the current grid. Unknown names
// fail with registry.ErrUnknownSolver. With steps the trace is loaded into
// the navigator and the grid shows step 0; without, the solution replaces
// the grid directly.
func (s *Session) Solve(reg *registry.Registry, name string, withSteps bool) (SolveResult, error) {
	strategy, err := reg.Lookup(name)
	if err != nil {
		return SolveResult{}, err
	}

	// Search strategies only guard their own placements; a grid that already
	// holds a conflict has no solution.
	if valid, _ := sudoku.Validity(s.grid); !valid {
		return SolveResult{Solved: false, State: s.State()}, nil
	}

	start := time.Now()
	if !withSteps {
		solved, ok := strategy.Solve(s.grid)
		if !ok {
			return SolveResult{Solved: false, State: s.State()}, nil
		}
		s.grid = solved
		s.nav.Reset()
		s.metrics = newMetrics(name, time.Since(start), 0)
		s.version++
		return SolveResult{Solved: true, State: s.State(), Metrics: s.metrics}, nil
	}

	solved, ok, steps := strategy.SolveWithSteps(s.grid)
	if !ok {
		return SolveResult{Solved: false, State: s.State()}, nil
	}
	elapsed := time.Since(start)

	if err := s.nav.Load(steps); err != nil {
		// A strategy returning ok with no steps still solved the grid.
		s.grid = solved
	} else {
		step, _ := s.nav.Current()
		s.grid = step.Grid
	}
	s.metrics = newMetrics(name, elapsed, len(steps))
	s.version++

	res := SolveResult{Solved: true, State: s.State(), Metrics: s.metrics}
	if st := s.nav.State(); st.Loaded {
		res.Info = &st
	}
	return res, nil
}

// StepNext advances the trace cursor and shows that step's grid.
func (s *Session) StepNext() (sudoku.GridState, navigator.State, error) {
	return s.stepMove(s.nav.Next)
}

// StepPrev moves the trace cursor back and shows that step's grid.
func (s *Session) StepPrev() (sudoku.GridState, navigator.State, error) {
	return s.stepMove(s.nav.Prev)
}

// StepJump moves the trace cursor to an absolute index.
func (s *Session) StepJump(target int) (sudoku.GridState, navigator.State, error) {
	return s.stepMove(func() error { return s.nav.Jump(target) })
}

func (s *Session) stepMove(move func() error) (sudoku.GridState, navigator.State, error) {
	if err := move(); err != nil {
		return s.State(), s.nav.State(), err
	}
	step, err := s.nav.Current()
	if err != nil {
		return s.State(), s.nav.State(), err
	}
	s.grid = step.Grid
	s.version++
	return s.State(), s.nav.State(), nil
}

// SolutionInfo reports the trace cursor, if a trace is loaded.
func (s *Session) SolutionInfo() (navigator.State, bool) {
	st := s.nav.State()
	return st, st.Loaded
}

// CurrentStep returns the step at the cursor.
func (s *Session) CurrentStep() (navigator.State, string, bool) {
	step, err := s.nav.Current()
	if err != nil {
		return navigator.State{}, "", false
	}
	return s.nav.State(), step.Description, true
}

// Metrics returns the cost of the last solve, if any.
func (s *Session) Metrics() (Metrics, bool) {
	if s.metrics == nil {
		return Metrics{}, false
	}
	return *s.metrics, true
}

// Original returns the loaded puzzle before any solving or editing.
func (s *Session) Original() sudoku.Grid { return s.original }

// Grid returns the current grid value.
func (s *Session) Grid() sudoku.Grid { return s.grid }

func (s *Session) clearSolution() {
	s.nav.Reset()
	s.metrics = nil
}

func newMetrics(name string, d time.Duration, steps int) *Metrics {
	return &Metrics{Duration: d, Solver: name, SolveMs: float64(d.Microseconds()) / 1000, StepCount: steps}
}
