package solverapi

import (
	"context"

	"github.com/ThunderKey/sudoku-solver/navigator"
	"github.com/ThunderKey/sudoku-solver/registry"
	"github.com/ThunderKey/sudoku-solver/session"
	"github.com/ThunderKey/sudoku-solver/sudoku"
)

// SolverAPI represents the solving service as seen by a remote caller.
type SolverAPI interface {
	Solvers(ctx context.Context) ([]registry.Descriptor, error)
	Solve(ctx context.Context, req *SolveRequest) (*StateResponse, error)
	State(ctx context.Context) (*StateResponse, error)
	UpdateCell(ctx context.Context, req *CellUpdateRequest) (*StateResponse, error)
	LoadPuzzle(ctx context.Context, filename string, data []byte) (*StateResponse, error)
	NextStep(ctx context.Context) (*StateResponse, error)
	PrevStep(ctx context.Context) (*StateResponse, error)
	JumpStep(ctx context.Context, req *JumpRequest) (*StateResponse, error)
	ReloadPlugins(ctx context.Context) (*ReloadResponse, error)
}

// CellUpdateRequest writes one cell.
type CellUpdateRequest struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// SolveRequest selects a strategy by catalog name.
type SolveRequest struct {
	SolverName string `json:"solver_name"`
	WithSteps  bool   `json:"with_steps"`
}

// JumpRequest moves the step cursor to an absolute index.
type JumpRequest struct {
	StepIndex int `json:"step_index"`
}

// ClearRequest empties the grid, optionally keeping the given cells.
type ClearRequest struct {
	KeepGiven bool `json:"keep_given"`
}

// StateResponse is the common response envelope: the grid state after the
// operation plus, when a trace is loaded, the cursor and solve metrics.
type StateResponse struct {
	Success      bool             `json:"success"`
	Message      string           `json:"message,omitempty"`
	GridState    sudoku.GridState `json:"grid_state"`
	SolutionInfo *navigator.State `json:"solution_info,omitempty"`
	Metrics      *session.Metrics `json:"performance_metrics,omitempty"`
}

// ReloadResponse reports the catalog after a plugin reload, with one
// diagnostic per rejected candidate.
type ReloadResponse struct {
	Success     bool                  `json:"success"`
	Solvers     []registry.Descriptor `json:"solvers"`
	Diagnostics []registry.Diagnostic `json:"diagnostics,omitempty"`
}
