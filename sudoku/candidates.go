package sudoku

import "math/bits"

// CandidateMask is a bitset of legal values for a cell; bit v is set when
// digit v may be placed.
type CandidateMask uint16

// Has reports whether digit v is in the set.
func (m CandidateMask) Has(v int) bool { return m&(1<<uint(v)) != 0 }

// Count returns the number of candidates in the set.
func (m CandidateMask) Count() int { return bits.OnesCount16(uint16(m)) }

// Values returns the candidates in ascending order.
func (m CandidateMask) Values() []int {
	out := make([]int, 0, m.Count())
	for v := 1; v <= Size; v++ {
		if m.Has(v) {
			out = append(out, v)
		}
	}
	return out
}

// CandidatesMask computes the legal digits for (row, col) from scratch: the
// digits absent from the cell's row, column, and box. A filled cell yields
// the singleton of its own value. Nothing is cached; grids mutate between
// calls.
func CandidatesMask(g Grid, row, col int) CandidateMask {
	if g[row][col] != 0 {
		return 1 << uint(g[row][col])
	}
	var used CandidateMask
	for i := 0; i < Size; i++ {
		used |= 1 << uint(g[row][i])
		used |= 1 << uint(g[i][col])
		used |= 1 << uint(g[row/BoxSize*BoxSize+i/BoxSize][col/BoxSize*BoxSize+i%BoxSize])
	}
	const all = CandidateMask(0b1111111110) // bits 1..9
	return all &^ used
}

// Candidates returns the legal digits for (row, col) in ascending order.
func Candidates(g Grid, row, col int) []int {
	return CandidatesMask(g, row, col).Values()
}
