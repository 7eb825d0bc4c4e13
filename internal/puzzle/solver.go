package puzzle

// Solution is a completed grid together with the search outcome.
type Solution struct {
	Grid     Grid
	Solvable bool
	Unique   bool
}

// maxDepth bounds the search depth: one decision per cell.
const maxDepth = Size * Size

// Solve completes the grid by depth-first backtracking and determines
// whether the completion is unique. Cells are scanned in row-major order
// and candidates tried ascending, so the first-found solution is
// deterministic. The search continues past the first solution until either
// a second distinct solution is found or the space is exhausted; it stops
// immediately at the second.
//
// Callers are expected to have validated the givens first; Solve itself
// never fails, it only reports Solvable=false.
func Solve(g Grid) Solution {
	var first Grid
	count := countSolutions(&g, &first, 0, 2)
	return Solution{
		Grid:     first,
		Solvable: count >= 1,
		Unique:   count == 1,
	}
}

// countSolutions counts completions of g up to limit, recording the first
// one found into first. The recursion depth is bounded by maxDepth.
func countSolutions(g *Grid, first *Grid, depth, limit int) int {
	if depth > maxDepth {
		return 0
	}

	row, col, found := nextEmpty(g)
	if !found {
		if first != nil {
			*first = *g
			first = nil
		}
		return 1
	}

	count := 0
	for v := 1; v <= 9; v++ {
		if !g.canPlace(row, col, v) {
			continue
		}
		g[row][col] = v
		count += countSolutions(g, first, depth+1, limit-count)
		g[row][col] = 0
		if count >= limit {
			break
		}
		if count > 0 {
			// The first solution is already recorded; deeper calls
			// only need to detect a second.
			first = nil
		}
	}
	return count
}

// nextEmpty returns the first unfilled cell in row-major order.
func nextEmpty(g *Grid) (int, int, bool) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// frame is one level of the explicit-stack search: the cell being decided
// and the last candidate tried there.
type frame struct {
	row, col int
	value    int
}

// SolveIterative is the explicit-stack form of Solve for callers with
// constrained call-stack depth. It produces byte-identical results to
// Solve for any input.
func SolveIterative(g Grid) Solution {
	var first Grid
	found := 0

	stack := make([]frame, 0, maxDepth)
	row, col, ok := nextEmpty(&g)
	if !ok {
		// Already complete: the lone completion is the grid itself.
		return Solution{Grid: g, Solvable: true, Unique: true}
	}
	stack = append(stack, frame{row: row, col: col})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		placed := false
		for v := top.value + 1; v <= 9; v++ {
			if g.canPlace(top.row, top.col, v) {
				g[top.row][top.col] = v
				top.value = v
				placed = true
				break
			}
		}

		if !placed {
			// Exhausted this cell: backtrack.
			g[top.row][top.col] = 0
			stack = stack[:len(stack)-1]
			continue
		}

		r, c, empty := nextEmpty(&g)
		if !empty {
			found++
			if found == 1 {
				first = g
			}
			if found >= 2 {
				break
			}
			// Keep searching for a second solution: undo the last
			// placement and continue from the same frame.
			g[top.row][top.col] = 0
			continue
		}
		stack = append(stack, frame{row: r, col: c})
	}

	return Solution{
		Grid:     first,
		Solvable: found >= 1,
		Unique:   found == 1,
	}
}

// IsComplete reports whether every row, column, and box of a fully filled
// grid is a permutation of 1..9.
func IsComplete(g Grid) bool {
	for r := 0; r < Size; r++ {
		var seen [10]bool
		for c := 0; c < Size; c++ {
			v := g[r][c]
			if v < 1 || v > 9 || seen[v] {
				return false
			}
			seen[v] = true
		}
	}
	for c := 0; c < Size; c++ {
		var seen [10]bool
		for r := 0; r < Size; r++ {
			v := g[r][c]
			if seen[v] {
				return false
			}
			seen[v] = true
		}
	}
	for box := 0; box < Size; box++ {
		var seen [10]bool
		baseRow := (box / BoxSize) * BoxSize
		baseCol := (box % BoxSize) * BoxSize
		for i := 0; i < Size; i++ {
			v := g[baseRow+i/BoxSize][baseCol+i%BoxSize]
			if seen[v] {
				return false
			}
			seen[v] = true
		}
	}
	return true
}
