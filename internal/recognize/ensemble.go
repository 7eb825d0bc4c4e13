package recognize

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Matcher is the template-correlation recognizer.
type Matcher interface {
	Match(cell gocv.Mat) Opinion
}

// Ensemble runs the recognizer passes over a cell in a fixed order and
// fuses their opinions under a Policy. The passes, with their acceptance
// rules, are:
//
//  1. blank discrimination (ink coverage below Policy.EmptyInk)
//  2. primary classifier (accepted alone at Policy.Accept)
//  3. template matcher (accepted on agreement with primary)
//  4. enhanced recovery (accepted when beating the prior best by
//     Policy.RecoveryMargin)
//
// The recovery pass only runs when passes 2-3 leave the cell unsettled.
type Ensemble struct {
	policy  Policy
	primary DigitReader
	matcher Matcher
}

// NewEnsemble builds an ensemble over the given recognizers.
func NewEnsemble(policy Policy, primary DigitReader, matcher Matcher) *Ensemble {
	return &Ensemble{policy: policy, primary: primary, matcher: matcher}
}

// Recognize produces the fused result for one normalized cell image.
func (e *Ensemble) Recognize(cell gocv.Mat) (CellResult, error) {
	if InkRatio(cell) < e.policy.EmptyInk {
		// No recognizer ran; an empty cell is a confident verdict of
		// the coverage test itself.
		return CellResult{Value: 0, Confidence: 1.0}, nil
	}

	primary, err := e.primary.ReadDigit(cell)
	if err != nil {
		return CellResult{}, fmt.Errorf("primary pass: %w", err)
	}
	primary.Source = SourcePrimary

	if e.policy.AcceptsPrimary(primary) {
		return e.policy.Decide(primary, Opinion{}, false, Opinion{}, false), nil
	}

	template := e.matcher.Match(cell)
	template.Source = SourceTemplate
	if e.policy.Agrees(primary, template) {
		return e.policy.Decide(primary, template, true, Opinion{}, false), nil
	}

	recovered, err := e.recover(cell)
	if err != nil {
		// Recovery failing is not fatal for the cell: fall back to the
		// first-pass opinions.
		return e.policy.Decide(primary, template, true, Opinion{}, false), nil
	}

	return e.policy.Decide(primary, template, true, recovered, true), nil
}

// recover reruns the primary classifier on the contrast-enhanced cell.
func (e *Ensemble) recover(cell gocv.Mat) (Opinion, error) {
	enhanced := Enhance(cell)
	defer enhanced.Close()

	recovered, err := e.primary.ReadDigit(enhanced)
	if err != nil {
		return Opinion{}, err
	}
	recovered.Source = SourceRecovery
	return recovered, nil
}
