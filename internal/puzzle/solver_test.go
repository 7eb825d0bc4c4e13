package puzzle

import "testing"

// samplePuzzle is the scanned test puzzle: 38 givens, one solution.
var samplePuzzle = Grid{
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

var sampleSolution = Grid{
	{3, 2, 5, 6, 7, 4, 1, 9, 8},
	{4, 9, 6, 8, 5, 1, 7, 2, 3},
	{8, 7, 1, 2, 3, 9, 6, 4, 5},
	{5, 6, 7, 9, 4, 2, 3, 8, 1},
	{2, 8, 3, 7, 1, 6, 9, 5, 4},
	{1, 4, 9, 5, 8, 3, 2, 7, 6},
	{9, 3, 2, 4, 6, 8, 5, 1, 7},
	{7, 1, 8, 3, 2, 5, 4, 6, 9},
	{6, 5, 4, 1, 9, 7, 8, 3, 2},
}

func TestSolveSamplePuzzle(t *testing.T) {
	sol := Solve(samplePuzzle)
	if !sol.Solvable {
		t.Fatal("sample puzzle reported unsolvable")
	}
	if !sol.Unique {
		t.Error("sample puzzle should have a unique solution")
	}
	if sol.Grid != sampleSolution {
		t.Errorf("wrong solution:\ngot  %v\nwant %v", sol.Grid, sampleSolution)
	}
}

func TestSolvePreservesGivens(t *testing.T) {
	sol := Solve(samplePuzzle)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if samplePuzzle[r][c] != 0 && sol.Grid[r][c] != samplePuzzle[r][c] {
				t.Errorf("given at (%d,%d) changed from %d to %d",
					r, c, samplePuzzle[r][c], sol.Grid[r][c])
			}
		}
	}
}

func TestSolveProducesCompleteGrid(t *testing.T) {
	sol := Solve(samplePuzzle)
	if !IsComplete(sol.Grid) {
		t.Error("solution rows/columns/boxes are not permutations of 1..9")
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if sol.Grid[r][c] < 1 || sol.Grid[r][c] > 9 {
				t.Fatalf("cell (%d,%d) = %d outside 1..9", r, c, sol.Grid[r][c])
			}
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	a := Solve(samplePuzzle)
	b := Solve(samplePuzzle)
	if a.Grid != b.Grid {
		t.Error("two runs on the same grid produced different solutions")
	}
}

func TestSolveBlankGrid(t *testing.T) {
	sol := Solve(Grid{})
	if !sol.Solvable {
		t.Fatal("blank grid should be solvable")
	}
	if sol.Unique {
		t.Error("blank grid must not report a unique solution")
	}
	if !IsComplete(sol.Grid) {
		t.Error("blank-grid completion is not a valid grid")
	}
}

func TestSolveUnsolvable(t *testing.T) {
	// Consistent givens that still admit no completion: row 0 needs a 1
	// in its last cell, but the column below already holds one.
	g := Grid{
		{2, 3, 4, 5, 6, 7, 8, 9, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 1},
	}
	sol := Solve(g)
	if sol.Solvable {
		t.Error("contradictory grid reported solvable")
	}
}

func TestSolveIterativeMatchesRecursive(t *testing.T) {
	cases := []Grid{samplePuzzle, {}, {{5, 3, 0, 0, 7, 0, 0, 0, 0}}}
	for i, g := range cases {
		rec := Solve(g)
		iter := SolveIterative(g)
		if rec.Solvable != iter.Solvable || rec.Unique != iter.Unique {
			t.Errorf("case %d: flags differ: recursive=%+v iterative=%+v",
				i, rec, iter)
		}
		if rec.Solvable && rec.Grid != iter.Grid {
			t.Errorf("case %d: iterative solver found a different first solution", i)
		}
	}
}

func TestSolveAlreadyComplete(t *testing.T) {
	sol := Solve(sampleSolution)
	if !sol.Solvable || !sol.Unique {
		t.Fatalf("complete grid: got %+v, want solvable and unique", sol)
	}
	if sol.Grid != sampleSolution {
		t.Error("complete grid should solve to itself")
	}
}

func TestCandidates(t *testing.T) {
	got := samplePuzzle.Candidates(0, 1)
	want := []int{2, 4, 6}
	if len(got) != len(want) {
		t.Fatalf("Candidates(0,1) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Candidates(0,1) = %v, want %v", got, want)
		}
	}
	if samplePuzzle.Candidates(0, 0) != nil {
		t.Error("filled cell should have no candidates")
	}
}
