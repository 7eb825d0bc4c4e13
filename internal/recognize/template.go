package recognize

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Template glyphs are rendered at 30x40, close to the stroke weight of
// typical printed puzzle digits.
const (
	templateWidth  = 30
	templateHeight = 40
)

// TemplateMatcher correlates a cell against rendered glyph templates for
// the digits 1-9. Templates are rendered once at construction and are
// read-only afterwards, so a single matcher is safe to share.
type TemplateMatcher struct {
	templates [10]gocv.Mat // index 1..9; 0 unused
}

// NewTemplateMatcher renders the digit templates.
func NewTemplateMatcher() *TemplateMatcher {
	m := &TemplateMatcher{}
	for digit := 1; digit <= 9; digit++ {
		m.templates[digit] = renderGlyph(digit)
	}
	return m
}

// Close releases the template images.
func (m *TemplateMatcher) Close() {
	for digit := 1; digit <= 9; digit++ {
		if !m.templates[digit].Empty() {
			m.templates[digit].Close()
		}
	}
}

// renderGlyph draws one digit as ink-on-transparent in Hershey Duplex,
// then inverts so strokes are bright for correlation.
func renderGlyph(digit int) gocv.Mat {
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 0, 0, 0),
		templateHeight, templateWidth, gocv.MatTypeCV8U)

	text := string(rune('0' + digit))
	size := gocv.GetTextSize(text, gocv.FontHersheyDuplex, 1.2, 2)
	origin := image.Pt((templateWidth-size.X)/2, (templateHeight+size.Y)/2)
	gocv.PutText(&canvas, text, origin, gocv.FontHersheyDuplex, 1.2,
		color.RGBA{}, 2)

	gocv.BitwiseNot(canvas, &canvas)
	return canvas
}

// Match correlates the cell against every template and returns the best
// label with its normalized correlation score. Scores below the caller's
// floor should be discarded; Match itself reports the raw best.
func (m *TemplateMatcher) Match(cell gocv.Mat) Opinion {
	op := Opinion{Source: SourceTemplate}
	if cell.Empty() {
		return op
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(cell, &resized, image.Pt(templateWidth, templateHeight),
		0, 0, gocv.InterpolationCubic)

	// Cells are normalized to dark ink on light ground; templates are
	// bright-on-dark, so invert before correlating.
	if resized.Mean().Val1 > 127 {
		gocv.BitwiseNot(resized, &resized)
	}

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	for digit := 1; digit <= 9; digit++ {
		gocv.MatchTemplate(resized, m.templates[digit], &result,
			gocv.TmCcoeffNormed, mask)
		_, maxVal, _, _ := gocv.MinMaxLoc(result)
		if float64(maxVal) > op.Confidence {
			op.Confidence = float64(maxVal)
			op.Value = digit
		}
	}
	return op
}
