// Package puzzlefile parses and renders the two puzzle exchange formats:
// JSON (an object with a grid/puzzle/board field, or a bare 9x9 array) and
// plain text (9 lines of 9 digits, blank lines and # comments ignored).
package puzzlefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ThunderKey/sudoku-solver/sudoku"
)

// Parse sniffs the format from the first non-space byte.
func Parse(data []byte) (sudoku.Grid, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return ParseJSON(data)
	}
	return ParseText(data)
}

// ParseJSON accepts {"grid": [[...]]} (also "puzzle" or "board" as the
// field name) or a bare 9x9 array.
func ParseJSON(data []byte) (sudoku.Grid, error) {
	var obj struct {
		Grid   [][]int `json:"grid"`
		Puzzle [][]int `json:"puzzle"`
		Board  [][]int `json:"board"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		for _, rows := range [][][]int{obj.Grid, obj.Puzzle, obj.Board} {
			if rows != nil {
				return sudoku.ParseGrid(rows)
			}
		}
	}

	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return sudoku.Grid{}, fmt.Errorf("invalid puzzle JSON: %w", err)
	}
	return sudoku.ParseGrid(rows)
}

// ParseText reads 9 content lines. Cells may be comma-separated,
// whitespace-separated, or contiguous digits.
func ParseText(data []byte) (sudoku.Grid, error) {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != sudoku.Size {
		return sudoku.Grid{}, fmt.Errorf("text format needs exactly %d lines, got %d", sudoku.Size, len(lines))
	}

	rows := make([][]int, 0, sudoku.Size)
	for i, line := range lines {
		row, err := parseLine(line)
		if err != nil {
			return sudoku.Grid{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return sudoku.ParseGrid(rows)
}

func parseLine(line string) ([]int, error) {
	var fields []string
	switch {
	case strings.Contains(line, ","):
		fields = strings.Split(line, ",")
	case strings.ContainsAny(line, " \t"):
		fields = strings.Fields(line)
	default:
		for _, r := range line {
			if r >= '0' && r <= '9' {
				fields = append(fields, string(r))
			}
		}
	}

	row := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("bad cell %q: %w", f, err)
		}
		row = append(row, v)
	}
	if len(row) != sudoku.Size {
		return nil, fmt.Errorf("need %d cells, got %d", sudoku.Size, len(row))
	}
	return row, nil
}

// MarshalJSON renders the download format.
func MarshalJSON(g sudoku.Grid) ([]byte, error) {
	return json.MarshalIndent(struct {
		Grid    [][]int `json:"grid"`
		Format  string  `json:"format"`
		Version string  `json:"version"`
	}{Grid: g.Rows(), Format: "sudoku", Version: "1.0"}, "", "  ")
}

// MarshalText renders the plain text format with a comment header.
func MarshalText(g sudoku.Grid) []byte {
	var b strings.Builder
	b.WriteString("# Sudoku Puzzle\n# 0 represents empty cells\n\n")
	for r := 0; r < sudoku.Size; r++ {
		for c := 0; c < sudoku.Size; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(g[r][c]))
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

type exportMetadata struct {
	Solver      string  `json:"solver"`
	SolveTimeMs float64 `json:"solve_time_ms"`
	Format      string  `json:"format"`
	Version     string  `json:"version"`
}

type exportFile struct {
	Original [][]int        `json:"original_puzzle"`
	Solution [][]int        `json:"solution"`
	Metadata exportMetadata `json:"metadata"`
}

// ExportSolution bundles puzzle, solution, and solve metadata.
func ExportSolution(original, solution sudoku.Grid, solverName string, d time.Duration) ([]byte, error) {
	return json.MarshalIndent(exportFile{
		Original: original.Rows(),
		Solution: solution.Rows(),
		Metadata: exportMetadata{
			Solver:      solverName,
			SolveTimeMs: float64(d.Microseconds()) / 1000,
			Format:      "sudoku_solution",
			Version:     "1.0",
		},
	}, "", "  ")
}
