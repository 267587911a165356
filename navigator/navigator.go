// Package navigator wraps a recorded step trace in a bounded cursor so a
// solve can be replayed one move at a time without re-running the strategy.
package navigator

import (
	"errors"

	"github.com/ThunderKey/sudoku-solver/solver"
)

var (
	// ErrEmptyTrace rejects loading a trace with no steps.
	ErrEmptyTrace = errors.New("empty trace")
	// ErrNoTrace reports navigation before any trace is loaded.
	ErrNoTrace = errors.New("no trace loaded")
	// ErrOutOfBounds reports a cursor move outside the trace.
	ErrOutOfBounds = errors.New("step index out of bounds")
)

// Navigator is a two-state machine: empty, or holding a trace with a cursor.
// Every failed operation leaves the state untouched.
type Navigator struct {
	steps []solver.Step
	index int
}

// State is the derived cursor position.
type State struct {
	Index   int  `json:"current_step"`
	Total   int  `json:"total_steps"`
	CanPrev bool `json:"can_go_prev"`
	CanNext bool `json:"can_go_next"`
	Loaded  bool `json:"loaded"`
}

// Load installs a trace and positions the cursor at step 0. An empty trace
// is rejected and the navigator stays empty.
func (n *Navigator) Load(steps []solver.Step) error {
	if len(steps) == 0 {
		return ErrEmptyTrace
	}
	n.steps = steps
	n.index = 0
	return nil
}

// Reset discards any loaded trace. Called whenever the grid the trace was
// recorded against changes.
func (n *Navigator) Reset() {
	n.steps = nil
	n.index = 0
}

// Next advances the cursor by one step.
func (n *Navigator) Next() error {
	if n.steps == nil {
		return ErrNoTrace
	}
	if n.index >= len(n.steps)-1 {
		return ErrOutOfBounds
	}
	n.index++
	return nil
}

// Prev moves the cursor back by one step.
func (n *Navigator) Prev() error {
	if n.steps == nil {
		return ErrNoTrace
	}
	if n.index <= 0 {
		return ErrOutOfBounds
	}
	n.index--
	return nil
}

// Jump sets the cursor directly; an out-of-range target fails without
// moving it.
func (n *Navigator) Jump(target int) error {
	if n.steps == nil {
		return ErrNoTrace
	}
	if target < 0 || target >= len(n.steps) {
		return ErrOutOfBounds
	}
	n.index = target
	return nil
}

// Current returns the step at the cursor.
func (n *Navigator) Current() (solver.Step, error) {
	if n.steps == nil {
		return solver.Step{}, ErrNoTrace
	}
	return n.steps[n.index], nil
}

// State reports the cursor position and which moves are possible.
func (n *Navigator) State() State {
	if n.steps == nil {
		return State{}
	}
	return State{
		Index:   n.index,
		Total:   len(n.steps),
		CanPrev: n.index > 0,
		CanNext: n.index < len(n.steps)-1,
		Loaded:  true,
	}
}
