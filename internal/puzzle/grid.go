// Package puzzle implements the 9x9 grid model, constraint validation,
// and the backtracking solver.
package puzzle

import "fmt"

// Size is the grid edge length.
const Size = 9

// BoxSize is the edge length of a 3x3 sub-box.
const BoxSize = 3

// Grid is a 9x9 digit matrix. 0 means unknown/empty, 1-9 are givens.
type Grid [Size][Size]int

// Position identifies a cell by row and column, both in [0,8].
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Clone returns a copy of the grid.
func (g Grid) Clone() Grid {
	return g
}

// Givens returns the positions of all nonzero cells in row-major order.
func (g *Grid) Givens() []Position {
	var givens []Position
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] != 0 {
				givens = append(givens, Position{Row: r, Col: c})
			}
		}
	}
	return givens
}

// FromRows builds a Grid from a slice-of-slices representation, as
// delivered by the correction endpoint. The input must be 9 rows of 9
// values in 0..9.
func FromRows(rows [][]int) (Grid, error) {
	var g Grid
	if len(rows) != Size {
		return g, fmt.Errorf("expected %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return g, fmt.Errorf("row %d has %d cells, expected %d", r, len(row), Size)
		}
		for c, v := range row {
			if v < 0 || v > 9 {
				return g, fmt.Errorf("cell (%d,%d) holds %d, outside 0..9", r, c, v)
			}
			g[r][c] = v
		}
	}
	return g, nil
}

// Rows returns the grid as a slice-of-slices for serialization.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, Size)
	for r := 0; r < Size; r++ {
		rows[r] = make([]int, Size)
		copy(rows[r], g[r][:])
	}
	return rows
}

// canPlace reports whether value v may be placed at (row,col) without
// duplicating v in the row, column, or 3x3 box. The cell itself is
// assumed empty.
func (g *Grid) canPlace(row, col, v int) bool {
	for i := 0; i < Size; i++ {
		if g[row][i] == v || g[i][col] == v {
			return false
		}
	}
	boxRow := (row / BoxSize) * BoxSize
	boxCol := (col / BoxSize) * BoxSize
	for r := boxRow; r < boxRow+BoxSize; r++ {
		for c := boxCol; c < boxCol+BoxSize; c++ {
			if g[r][c] == v {
				return false
			}
		}
	}
	return true
}

// Candidates returns the values that may legally be placed at (row,col),
// ascending. A filled cell has no candidates.
func (g *Grid) Candidates(row, col int) []int {
	if g[row][col] != 0 {
		return nil
	}
	var out []int
	for v := 1; v <= 9; v++ {
		if g.canPlace(row, col, v) {
			out = append(out, v)
		}
	}
	return out
}
