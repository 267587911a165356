package registry

import (
	"sync"

	"github.com/ThunderKey/sudoku-solver/solver"
)

// Builtins returns the source for the strategies compiled into this module.
func Builtins() Source { return builtinSource{} }

type builtinSource struct{}

func (builtinSource) Name() string { return "builtin" }

func (builtinSource) Discover() []Candidate {
	return []Candidate{
		solver.Backtracking{},
		solver.Heuristic{},
		solver.Propagation{},
		solver.BruteForce{},
	}
}

var (
	extMu           sync.Mutex
	extConstructors []func() Candidate
)

// RegisterExtension adds a strategy constructor to the extension source.
// Separately compiled strategy packages call this from init(); the
// constructor runs on every discovery so each catalog gets fresh instances.
func RegisterExtension(fn func() Candidate) {
	extMu.Lock()
	defer extMu.Unlock()
	extConstructors = append(extConstructors, fn)
}

// Extensions returns the source backed by RegisterExtension.
func Extensions() Source { return extensionSource{} }

type extensionSource struct{}

func (extensionSource) Name() string { return "extension" }

func (extensionSource) Discover() []Candidate {
	extMu.Lock()
	fns := make([]func() Candidate, len(extConstructors))
	copy(fns, extConstructors)
	extMu.Unlock()

	out := make([]Candidate, 0, len(fns))
	for _, fn := range fns {
		out = append(out, fn())
	}
	return out
}
