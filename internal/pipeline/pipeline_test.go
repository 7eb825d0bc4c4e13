package pipeline

import (
	"testing"

	"sudoku-scan/internal/puzzle"
	"sudoku-scan/internal/recognize"
)

var sampleRows = [][]int{
	{3, 0, 5, 0, 0, 0, 1, 0, 8},
	{0, 9, 0, 0, 5, 1, 7, 2, 0},
	{0, 7, 0, 2, 3, 0, 6, 4, 5},
	{0, 0, 7, 0, 4, 2, 0, 8, 1},
	{0, 8, 0, 0, 0, 0, 9, 0, 0},
	{1, 0, 9, 0, 0, 0, 0, 7, 0},
	{0, 3, 2, 4, 0, 8, 5, 1, 7},
	{0, 1, 0, 0, 0, 5, 4, 0, 0},
	{6, 0, 0, 0, 9, 0, 8, 0, 0},
}

func newTestPipeline() *Pipeline {
	// The correction path never touches the recognizers.
	return New(nil, nil)
}

func TestCorrectSolvesSamplePuzzle(t *testing.T) {
	p := newTestPipeline()
	res, err := p.Correct(sampleRows)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}

	if !res.ValidPuzzle {
		t.Fatalf("sample puzzle reported invalid: %v", res.ValidationConflicts)
	}
	if res.SolvedGrid == nil {
		t.Fatal("no solution returned")
	}
	if !res.UniqueSolution {
		t.Error("sample puzzle should be unique")
	}

	wantRow0 := []int{3, 2, 5, 6, 7, 4, 1, 9, 8}
	for i, v := range wantRow0 {
		if res.SolvedGrid[0][i] != v {
			t.Fatalf("solved row 0 = %v, want %v", res.SolvedGrid[0], wantRow0)
		}
	}

	// Givens must be preserved in the solution.
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if sampleRows[r][c] != 0 && res.SolvedGrid[r][c] != sampleRows[r][c] {
				t.Errorf("given (%d,%d) changed in solution", r, c)
			}
		}
	}

	if len(res.GivenPositions) != 38 {
		t.Errorf("given_positions has %d entries, want 38", len(res.GivenPositions))
	}
	if res.AccuracyEstimate != 1.0 {
		t.Errorf("accuracy_estimate = %v, want 1.0 on a corrected grid", res.AccuracyEstimate)
	}
	if res.ProcessingTime < 0 {
		t.Errorf("processing_time = %v", res.ProcessingTime)
	}
}

func TestCorrectInvalidPuzzleSkipsSolver(t *testing.T) {
	rows := make([][]int, 9)
	for i := range rows {
		rows[i] = make([]int, 9)
	}
	rows[0][0] = 5
	rows[0][8] = 5

	p := newTestPipeline()
	res, err := p.Correct(rows)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if res.ValidPuzzle {
		t.Error("duplicate givens reported valid")
	}
	if res.SolvedGrid != nil {
		t.Error("solver ran on an invalid puzzle")
	}
	if len(res.ValidationConflicts) == 0 {
		t.Error("no conflicts reported")
	}
	if res.OriginalGrid[0][0] != 5 {
		t.Error("original grid not returned for invalid puzzle")
	}
}

func TestCorrectBlankGrid(t *testing.T) {
	rows := make([][]int, 9)
	for i := range rows {
		rows[i] = make([]int, 9)
	}
	p := newTestPipeline()
	res, err := p.Correct(rows)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if !res.ValidPuzzle || res.SolvedGrid == nil {
		t.Fatal("blank grid should validate and solve")
	}
	if res.UniqueSolution {
		t.Error("blank grid must not be unique")
	}
	if res.AccuracyEstimate != 0 {
		t.Errorf("accuracy_estimate = %v for a grid with no givens", res.AccuracyEstimate)
	}
}

func TestCorrectRejectsMalformedGrid(t *testing.T) {
	p := newTestPipeline()
	if _, err := p.Correct([][]int{{1, 2, 3}}); err == nil {
		t.Error("short grid accepted")
	}
	bad := make([][]int, 9)
	for i := range bad {
		bad[i] = make([]int, 9)
	}
	bad[4][4] = 10
	if _, err := p.Correct(bad); err == nil {
		t.Error("out-of-range value accepted")
	}
}

func TestCorrectDoesNotAliasInput(t *testing.T) {
	rows := make([][]int, 9)
	for i := range rows {
		rows[i] = make([]int, 9)
	}
	rows[0][0] = 4

	p := newTestPipeline()
	res, err := p.Correct(rows)
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}

	rows[0][0] = 9
	if res.OriginalGrid[0][0] != 4 {
		t.Error("result aliases the caller's grid")
	}
}

func TestAssemble(t *testing.T) {
	var results [puzzle.Size][puzzle.Size]recognize.CellResult
	results[0][0] = recognize.CellResult{
		Value: 7, Confidence: 0.9,
		Sources: []recognize.Source{recognize.SourcePrimary},
	}
	results[2][3] = recognize.CellResult{
		Value: 4, Confidence: 0.5,
		Sources:   []recognize.Source{recognize.SourceRecovery},
		Uncertain: true,
	}
	results[8][8] = recognize.CellResult{Value: 0, Confidence: 1.0}

	a := Assemble(&results)
	if a.Grid[0][0] != 7 || a.Grid[2][3] != 4 || a.Grid[8][8] != 0 {
		t.Errorf("grid misassembled: %v", a.Grid)
	}
	if a.Confidence[2][3] != 0.5 {
		t.Errorf("confidence misassembled")
	}
	if len(a.Uncertain) != 1 || a.Uncertain[0] != (puzzle.Position{Row: 2, Col: 3}) {
		t.Errorf("uncertain set = %v", a.Uncertain)
	}

	// (7+4 detected) mean of 0.9 and 0.5.
	if est := a.AccuracyEstimate(); est < 0.699 || est > 0.701 {
		t.Errorf("AccuracyEstimate = %v, want 0.7", est)
	}

	tags := a.sourceRows()
	if tags[2][3][0] != "recovery" {
		t.Errorf("source tags = %v", tags[2][3])
	}
	if tags[5][5] == nil || len(tags[5][5]) != 0 {
		t.Errorf("empty cell should serialize an empty source list, got %v", tags[5][5])
	}
}
