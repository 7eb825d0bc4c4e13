package recognize

// Policy holds the confidence thresholds that drive ensemble fusion.
// All values were tuned against the scanned sample set; they are plain
// data so tests can tighten or loosen them.
type Policy struct {
	// Accept is the primary-classifier confidence at or above which its
	// opinion is taken without consulting other recognizers.
	Accept float64
	// TemplateFloor is the minimum normalized correlation for a template
	// opinion to count at all.
	TemplateFloor float64
	// RecoveryMargin is how much a recovered reread must beat the best
	// prior confidence by to replace it.
	RecoveryMargin float64
	// Uncertain is the confidence below which an accepted value is
	// flagged for review.
	Uncertain float64
	// EmptyInk is the foreground-pixel coverage below which a cell is
	// classified empty.
	EmptyInk float64
}

// DefaultPolicy returns the production thresholds.
func DefaultPolicy() Policy {
	return Policy{
		Accept:         0.85,
		TemplateFloor:  0.50,
		RecoveryMargin: 0.10,
		Uncertain:      0.70,
		EmptyInk:       0.005,
	}
}

// AcceptsPrimary reports whether the primary opinion alone settles the cell.
func (p Policy) AcceptsPrimary(primary Opinion) bool {
	return primary.Value != 0 && primary.Confidence >= p.Accept
}

// Agrees reports whether primary and template back the same nonzero value.
func (p Policy) Agrees(primary, template Opinion) bool {
	return primary.Value != 0 && primary.Value == template.Value &&
		template.Confidence >= p.TemplateFloor
}

// Decide fuses the collected opinions into the final cell result. It is a
// pure function: identical opinions always yield identical results.
//
// hasTemplate and hasRecovered report whether those passes ran; the
// recovery pass only runs when neither earlier rule settled the cell.
func (p Policy) Decide(primary, template Opinion, hasTemplate bool, recovered Opinion, hasRecovered bool) CellResult {
	if p.AcceptsPrimary(primary) {
		return CellResult{
			Value:      primary.Value,
			Confidence: primary.Confidence,
			Sources:    []Source{SourcePrimary},
			Uncertain:  primary.Confidence < p.Uncertain,
		}
	}

	if hasTemplate && p.Agrees(primary, template) {
		conf := primary.Confidence
		if template.Confidence > conf {
			conf = template.Confidence
		}
		return CellResult{
			Value:      primary.Value,
			Confidence: conf,
			Sources:    []Source{SourcePrimary, SourceTemplate},
			Uncertain:  conf < p.Uncertain,
		}
	}

	best := p.bestPrior(primary, template, hasTemplate)

	if hasRecovered && recovered.Value != 0 &&
		recovered.Confidence > best.Confidence+p.RecoveryMargin {
		return CellResult{
			Value:      recovered.Value,
			Confidence: recovered.Confidence,
			Sources:    []Source{SourceRecovery},
			Uncertain:  recovered.Confidence < p.Uncertain,
		}
	}

	if best.Value == 0 {
		// Ink present but nothing readable: report unknown, flagged.
		return CellResult{Uncertain: true}
	}
	return CellResult{
		Value:      best.Value,
		Confidence: best.Confidence,
		Sources:    []Source{best.Source},
		Uncertain:  true,
	}
}

// bestPrior picks the stronger of the primary and template opinions.
// On an exact confidence tie the primary wins.
func (p Policy) bestPrior(primary, template Opinion, hasTemplate bool) Opinion {
	if !hasTemplate || template.Value == 0 || template.Confidence < p.TemplateFloor {
		return primary
	}
	if primary.Value == 0 {
		return template
	}
	if template.Confidence > primary.Confidence {
		return template
	}
	return primary
}
