package sudoku

// UnitKind names the rule group a conflict was found in.
type UnitKind string

const (
	UnitRow    UnitKind = "row"
	UnitColumn UnitKind = "column"
	UnitBox    UnitKind = "box"
)

// Conflict records one rule violation: a value appearing more than once in
// a single row, column, or box. Cells lists exactly the cells holding that
// value in the unit, in row-major order.
type Conflict struct {
	Unit  UnitKind `json:"unit"`
	Index int      `json:"index"`
	Value int      `json:"value"`
	Cells []Coord  `json:"cells"`
}

// Conflicts scans all 27 units and reports every duplicated value. It is a
// pure function of the grid; conflicts are derived on demand, never stored.
// Order is deterministic: rows, then columns, then boxes, unit index
// ascending, value ascending.
func Conflicts(g Grid) []Conflict {
	var out []Conflict

	unit := func(kind UnitKind, index int, cells [Size]Coord) {
		var byValue [Size + 1][]Coord
		for _, cell := range cells {
			v := g[cell.Row][cell.Col]
			if v == 0 {
				continue
			}
			byValue[v] = append(byValue[v], cell)
		}
		for v := 1; v <= Size; v++ {
			if len(byValue[v]) >= 2 {
				out = append(out, Conflict{Unit: kind, Index: index, Value: v, Cells: byValue[v]})
			}
		}
	}

	for r := 0; r < Size; r++ {
		var cells [Size]Coord
		for c := 0; c < Size; c++ {
			cells[c] = Coord{Row: r, Col: c}
		}
		unit(UnitRow, r, cells)
	}
	for c := 0; c < Size; c++ {
		var cells [Size]Coord
		for r := 0; r < Size; r++ {
			cells[r] = Coord{Row: r, Col: c}
		}
		unit(UnitColumn, c, cells)
	}
	for b := 0; b < Size; b++ {
		br, bc := b/BoxSize*BoxSize, b%BoxSize*BoxSize
		var cells [Size]Coord
		for i := 0; i < Size; i++ {
			cells[i] = Coord{Row: br + i/BoxSize, Col: bc + i%BoxSize}
		}
		unit(UnitBox, b, cells)
	}
	return out
}

// Validity reports whether the grid is free of conflicts and whether every
// cell is filled. A partially filled grid can be valid; a grid that is both
// valid and complete is a solved Sudoku.
func Validity(g Grid) (isValid, isComplete bool) {
	isComplete = true
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				isComplete = false
			}
		}
	}
	return len(Conflicts(g)) == 0, isComplete
}
