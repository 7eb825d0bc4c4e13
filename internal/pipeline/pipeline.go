// Package pipeline sequences the vision, recognition, and solving stages
// and shapes their combined output for the service layer.
package pipeline

import (
	"fmt"
	"log"
	"time"

	"sudoku-scan/internal/puzzle"
	"sudoku-scan/internal/recognize"
	"sudoku-scan/internal/vision"
)

// Result is the output contract consumed by the transport layer.
type Result struct {
	OriginalGrid        [][]int           `json:"original_grid"`
	SolvedGrid          [][]int           `json:"solved_grid,omitempty"`
	GivenPositions      []puzzle.Position `json:"given_positions"`
	ConfidenceScores    [][]float64       `json:"confidence_scores"`
	RecognitionSources  [][][]string      `json:"recognition_sources"`
	UncertainCells      []puzzle.Position `json:"uncertain_cells"`
	ValidationConflicts []puzzle.Conflict `json:"validation_conflicts"`
	ProcessingTime      float64           `json:"processing_time"`
	ValidPuzzle         bool              `json:"valid_puzzle"`
	UniqueSolution      bool              `json:"unique_solution"`
	AccuracyEstimate    float64           `json:"accuracy_estimate"`
}

// Pipeline runs one request's stages. The recognizer handles are created
// once at process start and shared; everything else is per-request.
type Pipeline struct {
	policy   recognize.Policy
	ensemble *recognize.Ensemble
}

// New builds a pipeline over the shared recognizer handles.
func New(primary recognize.DigitReader, matcher recognize.Matcher) *Pipeline {
	policy := recognize.DefaultPolicy()
	return &Pipeline{
		policy:   policy,
		ensemble: recognize.NewEnsemble(policy, primary, matcher),
	}
}

// Process runs the full image pipeline: decode, locate, extract,
// recognize, assemble, validate, solve. Decode and locate failures are
// fatal; an invalid puzzle skips the solver but still returns the
// extracted grid.
func (p *Pipeline) Process(imageData []byte) (*Result, error) {
	start := time.Now()

	gray, err := vision.Decode(imageData)
	if err != nil {
		return nil, err
	}

	raster := vision.Preprocess(gray)
	gray.Close()
	defer raster.Close()

	quad, err := vision.LocateGrid(raster.Binary)
	if err != nil {
		return nil, err
	}

	corrected, err := vision.CorrectPerspective(raster.Gray, quad)
	if err != nil {
		return nil, err
	}
	defer corrected.Close()

	cells, err := vision.ExtractCells(corrected)
	if err != nil {
		return nil, fmt.Errorf("cell extraction: %w", err)
	}
	defer vision.CloseCells(cells)

	var results [puzzle.Size][puzzle.Size]recognize.CellResult
	for _, cell := range cells {
		res, err := p.ensemble.Recognize(cell.Image)
		if err != nil {
			return nil, fmt.Errorf("cell (%d,%d): %w", cell.Row, cell.Col, err)
		}
		results[cell.Row][cell.Col] = res
	}

	assembly := Assemble(&results)
	log.Printf("recognized %d givens, %d uncertain",
		len(assembly.Grid.Givens()), len(assembly.Uncertain))

	return p.finish(assembly, start), nil
}

// Correct re-runs validation and solving on a caller-supplied grid,
// bypassing all vision stages. The grid is copied; nothing from a prior
// request is aliased.
func (p *Pipeline) Correct(rows [][]int) (*Result, error) {
	start := time.Now()

	grid, err := puzzle.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("invalid correction grid: %w", err)
	}

	assembly := Assembly{Grid: grid}
	for r := 0; r < puzzle.Size; r++ {
		for c := 0; c < puzzle.Size; c++ {
			if grid[r][c] != 0 {
				// Caller-asserted values carry full confidence.
				assembly.Confidence[r][c] = 1.0
			}
		}
	}

	return p.finish(assembly, start), nil
}

// finish validates and solves the assembled grid and shapes the result.
func (p *Pipeline) finish(assembly Assembly, start time.Time) *Result {
	result := &Result{
		OriginalGrid:        assembly.Grid.Rows(),
		GivenPositions:      positions(assembly.Grid.Givens()),
		ConfidenceScores:    assembly.confidenceRows(),
		RecognitionSources:  assembly.sourceRows(),
		UncertainCells:      positions(assembly.Uncertain),
		ValidationConflicts: []puzzle.Conflict{},
		AccuracyEstimate:    assembly.AccuracyEstimate(),
	}

	valid, conflicts := puzzle.Validate(assembly.Grid)
	result.ValidPuzzle = valid
	if !valid {
		result.ValidationConflicts = conflicts
		log.Printf("puzzle invalid: %d conflicts, solver skipped", len(conflicts))
		result.ProcessingTime = time.Since(start).Seconds()
		return result
	}

	sol := puzzle.SolveIterative(assembly.Grid.Clone())
	if sol.Solvable {
		solved := sol.Grid
		result.SolvedGrid = solved.Rows()
		result.UniqueSolution = sol.Unique
	} else {
		log.Printf("puzzle valid but unsolvable")
	}

	result.ProcessingTime = time.Since(start).Seconds()
	return result
}

// positions normalizes a possibly-nil slice to an empty one so JSON
// consumers always see a list.
func positions(ps []puzzle.Position) []puzzle.Position {
	if ps == nil {
		return []puzzle.Position{}
	}
	return ps
}
