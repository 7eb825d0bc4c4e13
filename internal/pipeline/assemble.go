package pipeline

import (
	"sudoku-scan/internal/puzzle"
	"sudoku-scan/internal/recognize"
)

// Assembly lays the 81 per-cell results out as parallel 9x9 structures.
// Pure aggregation; no recognition logic.
type Assembly struct {
	Grid       puzzle.Grid
	Confidence [puzzle.Size][puzzle.Size]float64
	Sources    [puzzle.Size][puzzle.Size][]recognize.Source
	Uncertain  []puzzle.Position
}

// Assemble collects per-cell results indexed by (row,col).
func Assemble(results *[puzzle.Size][puzzle.Size]recognize.CellResult) Assembly {
	var a Assembly
	for r := 0; r < puzzle.Size; r++ {
		for c := 0; c < puzzle.Size; c++ {
			res := results[r][c]
			a.Grid[r][c] = res.Value
			a.Confidence[r][c] = res.Confidence
			a.Sources[r][c] = res.Sources
			if res.Uncertain {
				a.Uncertain = append(a.Uncertain, puzzle.Position{Row: r, Col: c})
			}
		}
	}
	return a
}

// AccuracyEstimate is the mean final confidence over detected (nonzero)
// cells, or 0 when nothing was detected.
func (a *Assembly) AccuracyEstimate() float64 {
	var sum float64
	var count int
	for r := 0; r < puzzle.Size; r++ {
		for c := 0; c < puzzle.Size; c++ {
			if a.Grid[r][c] != 0 {
				sum += a.Confidence[r][c]
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// confidenceRows converts the confidence grid for serialization.
func (a *Assembly) confidenceRows() [][]float64 {
	rows := make([][]float64, puzzle.Size)
	for r := 0; r < puzzle.Size; r++ {
		rows[r] = make([]float64, puzzle.Size)
		copy(rows[r], a.Confidence[r][:])
	}
	return rows
}

// sourceRows converts the provenance grid to string tags for
// serialization. Cells with no contributing source get an empty list,
// never null.
func (a *Assembly) sourceRows() [][][]string {
	rows := make([][][]string, puzzle.Size)
	for r := 0; r < puzzle.Size; r++ {
		rows[r] = make([][]string, puzzle.Size)
		for c := 0; c < puzzle.Size; c++ {
			tags := make([]string, len(a.Sources[r][c]))
			for i, s := range a.Sources[r][c] {
				tags[i] = string(s)
			}
			rows[r][c] = tags
		}
	}
	return rows
}
