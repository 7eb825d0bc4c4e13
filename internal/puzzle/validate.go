package puzzle

import "fmt"

// ConflictKind names which constraint a duplicate given violates.
type ConflictKind string

const (
	ConflictRow    ConflictKind = "row"
	ConflictColumn ConflictKind = "column"
	ConflictBox    ConflictKind = "box"
)

// Conflict describes a duplicated given.
type Conflict struct {
	Position Position     `json:"position"`
	Value    int          `json:"value"`
	Kind     ConflictKind `json:"kind"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("duplicate %d in %s at (%d,%d)", c.Value, c.Kind, c.Position.Row, c.Position.Col)
}

// Validate checks the givens for duplicate values in any row, column, or
// 3x3 box. Rows are scanned first, then columns, then boxes, so the
// reported conflicts are deterministic for a given grid. A valid grid
// returns (true, nil).
func Validate(g Grid) (bool, []Conflict) {
	var conflicts []Conflict

	for r := 0; r < Size; r++ {
		var seen [10]bool
		for c := 0; c < Size; c++ {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if seen[v] {
				conflicts = append(conflicts, Conflict{
					Position: Position{Row: r, Col: c},
					Value:    v,
					Kind:     ConflictRow,
				})
				continue
			}
			seen[v] = true
		}
	}

	for c := 0; c < Size; c++ {
		var seen [10]bool
		for r := 0; r < Size; r++ {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if seen[v] {
				conflicts = append(conflicts, Conflict{
					Position: Position{Row: r, Col: c},
					Value:    v,
					Kind:     ConflictColumn,
				})
				continue
			}
			seen[v] = true
		}
	}

	for box := 0; box < Size; box++ {
		var seen [10]bool
		baseRow := (box / BoxSize) * BoxSize
		baseCol := (box % BoxSize) * BoxSize
		for i := 0; i < Size; i++ {
			r := baseRow + i/BoxSize
			c := baseCol + i%BoxSize
			v := g[r][c]
			if v == 0 {
				continue
			}
			if seen[v] {
				conflicts = append(conflicts, Conflict{
					Position: Position{Row: r, Col: c},
					Value:    v,
					Kind:     ConflictBox,
				})
				continue
			}
			seen[v] = true
		}
	}

	return len(conflicts) == 0, conflicts
}
