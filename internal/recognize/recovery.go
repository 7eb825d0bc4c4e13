package recognize

import (
	"image"

	"gocv.io/x/gocv"
)

// normalizedCellSize is the edge length cells are normalized to before
// recognition.
const normalizedCellSize = 100

// Enhance produces the enhanced-recovery variant of a cell: histogram
// equalization to recover faint strokes, then Otsu rebinarization. Used
// only for cells whose first-pass opinions were low confidence. The caller
// owns the returned Mat.
func Enhance(cell gocv.Mat) gocv.Mat {
	equalized := gocv.NewMat()
	defer equalized.Close()
	gocv.EqualizeHist(cell, &equalized)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(equalized, &binary, 0, 255,
		gocv.ThresholdBinary|gocv.ThresholdOtsu)

	enhanced := gocv.NewMat()
	gocv.Resize(binary, &enhanced, image.Pt(normalizedCellSize, normalizedCellSize),
		0, 0, gocv.InterpolationCubic)

	// Keep ink dark on light ground, same convention as first-pass cells.
	if enhanced.Mean().Val1 < 127 {
		gocv.BitwiseNot(enhanced, &enhanced)
	}
	return enhanced
}

// InkRatio returns the fraction of ink (dark) pixels in a normalized cell.
func InkRatio(cell gocv.Mat) float64 {
	if cell.Empty() {
		return 0
	}
	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(cell, &dark, 127, 255, gocv.ThresholdBinaryInv)
	total := cell.Rows() * cell.Cols()
	if total == 0 {
		return 0
	}
	return float64(gocv.CountNonZero(dark)) / float64(total)
}
