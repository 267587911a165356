package sudoku

// GridState is a derived, read-only snapshot of a grid and its given mask.
// It is recomputed on demand and never stored.
type GridState struct {
	Grid        Grid       `json:"grid"`
	Givens      GivenMask  `json:"given_cells"`
	Conflicts   []Conflict `json:"conflicts"`
	IsEmpty     bool       `json:"is_empty"`
	IsValid     bool       `json:"is_valid"`
	IsComplete  bool       `json:"is_complete"`
	FilledCount int        `json:"filled_count"`
	EmptyCount  int        `json:"empty_count"`
	GivenCount  int        `json:"given_count"`
}

// State computes the full snapshot for a grid. IsValid && IsComplete implies
// the grid is a solved Sudoku.
func State(g Grid, givens GivenMask) GridState {
	st := GridState{
		Grid:      g,
		Givens:    givens,
		Conflicts: Conflicts(g),
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				st.EmptyCount++
			} else {
				st.FilledCount++
			}
			if givens[r][c] {
				st.GivenCount++
			}
		}
	}
	st.IsEmpty = st.FilledCount == 0
	st.IsValid = len(st.Conflicts) == 0
	st.IsComplete = st.EmptyCount == 0
	return st
}
