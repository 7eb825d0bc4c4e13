// Package recognize implements per-cell digit recognition: a Tesseract
// primary classifier, a glyph-template matcher, an enhanced-recovery
// reread, and the deterministic policy that fuses their opinions.
package recognize

// Source tags which recognizer produced an opinion.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceTemplate Source = "template"
	SourceRecovery Source = "recovery"
)

// Opinion is a single recognizer's verdict for one cell: a value in 0..9
// (0 = empty) and a confidence in [0,1].
type Opinion struct {
	Value      int
	Confidence float64
	Source     Source
}

// CellResult is the fused per-cell outcome.
type CellResult struct {
	Value      int
	Confidence float64
	Sources    []Source // opinions that agreed with the final value, in pass order
	Uncertain  bool
}
