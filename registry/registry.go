// Package registry catalogs solving strategies discovered from configured
// sources. Discovery validates every candidate at runtime; a bad candidate
// is recorded as a diagnostic and skipped, never fatal to the whole scan.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ThunderKey/sudoku-solver/solver"
)

// ErrUnknownSolver reports a strategy name absent from the catalog.
var ErrUnknownSolver = errors.New("unknown solver")

// Candidate is whatever a source hands over. The registry performs the
// capability check; sources compiled elsewhere need not import the solver
// package to participate.
type Candidate any

// Source produces strategy candidates for discovery.
type Source interface {
	Name() string
	Discover() []Candidate
}

// Descriptor is the listing entry for one cataloged strategy.
type Descriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Diagnostic records one rejected candidate.
type Diagnostic struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// Registry holds the current catalog. Reads are concurrent; Reload builds a
// complete replacement catalog before swapping it in, so readers observe
// the old catalog or the new one, never a mix.
type Registry struct {
	log     zerolog.Logger
	sources []Source

	mu      sync.RWMutex
	byName  map[string]solver.Strategy
	ordered []Descriptor
}

// New runs an initial discovery over the given sources.
func New(log zerolog.Logger, sources ...Source) (*Registry, []Diagnostic) {
	r := &Registry{log: log, sources: sources}
	_, diags := r.Reload()
	return r, diags
}

// List returns the catalog in discovery order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get returns the named strategy.
func (r *Registry) Get(name string) (solver.Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// Lookup is Get with a typed error for callers reporting to users.
func (r *Registry) Lookup(name string) (solver.Strategy, error) {
	if s, ok := r.Get(name); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownSolver)
}

// Reload re-runs discovery and atomically replaces the catalog. In-flight
// callers holding a strategy from the previous catalog are unaffected.
func (r *Registry) Reload() ([]Descriptor, []Diagnostic) {
	byName := make(map[string]solver.Strategy)
	var ordered []Descriptor
	var diags []Diagnostic

	reject := func(src, reason string) {
		diags = append(diags, Diagnostic{Source: src, Reason: reason})
		r.log.Warn().Str("source", src).Str("reason", reason).Msg("solver candidate rejected")
	}

	for _, src := range r.sources {
		for _, cand := range src.Discover() {
			s, ok := cand.(solver.Strategy)
			if !ok {
				reject(src.Name(), fmt.Sprintf("candidate %T does not satisfy the strategy contract", cand))
				continue
			}
			name := s.Name()
			if name == "" {
				reject(src.Name(), fmt.Sprintf("candidate %T has an empty name", cand))
				continue
			}
			if _, exists := byName[name]; exists {
				reject(src.Name(), fmt.Sprintf("duplicate solver name %q", name))
				continue
			}
			byName[name] = s
			ordered = append(ordered, Descriptor{Name: name, Description: s.Description(), Source: src.Name()})
		}
	}

	r.mu.Lock()
	r.byName = byName
	r.ordered = ordered
	r.mu.Unlock()

	r.log.Info().Int("solvers", len(ordered)).Int("rejected", len(diags)).Msg("solver catalog loaded")

	out := make([]Descriptor, len(ordered))
	copy(out, ordered)
	return out, diags
}
