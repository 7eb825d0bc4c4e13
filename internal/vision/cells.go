package vision

import (
	"fmt"
	"image"

	"sudoku-scan/pkg/geometry"

	"gocv.io/x/gocv"
)

// GridCells is the number of cells along each grid edge.
const GridCells = 9

const (
	// cropFraction shrinks each cell crop toward its center. Cropping
	// flush to the nominal cell boundary reliably picks up grid-line
	// pixels, which corrupt thresholding; 0.8 trades a little stroke
	// margin for a border-free crop.
	cropFraction = 0.8
	// edgeShift nudges the crop center inward for the two outermost
	// rows and columns, away from the heavy outer boundary lines.
	edgeShift = 6
	// cellSize is the normalized per-cell image edge length.
	cellSize = 100
)

// Cell is one extracted, normalized sub-image addressed by grid position.
type Cell struct {
	Row   int
	Col   int
	Image gocv.Mat
}

// CloseCells releases all cell images.
func CloseCells(cells []Cell) {
	for i := range cells {
		if !cells[i].Image.Empty() {
			cells[i].Image.Close()
		}
	}
}

// cellWindow computes the center-biased crop rectangle for cell (row,col)
// in a raster of the given dimensions. Pure arithmetic, so the 81-cell
// and equal-dimension invariants are testable without OpenCV.
func cellWindow(row, col, height, width int) geometry.RectInt {
	cellH := height / GridCells
	cellW := width / GridCells

	cy := row*cellH + cellH/2
	cx := col*cellW + cellW/2
	switch {
	case col <= 1:
		cx += edgeShift
	case col >= GridCells-2:
		cx -= edgeShift
	}
	switch {
	case row <= 1:
		cy += edgeShift
	case row >= GridCells-2:
		cy -= edgeShift
	}

	h := int(float64(cellH) * cropFraction)
	w := int(float64(cellW) * cropFraction)
	r := geometry.RectInt{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
	return r.ClampTo(width, height)
}

// ExtractCells partitions the corrected raster into exactly 81 normalized
// cells in row-major order.
func ExtractCells(corrected gocv.Mat) ([]Cell, error) {
	height, width := corrected.Rows(), corrected.Cols()
	if height < GridCells*GridCells || width < GridCells*GridCells {
		return nil, fmt.Errorf("raster %dx%d too small to partition", width, height)
	}

	cells := make([]Cell, 0, GridCells*GridCells)
	for row := 0; row < GridCells; row++ {
		for col := 0; col < GridCells; col++ {
			win := cellWindow(row, col, height, width)
			if win.Empty() {
				CloseCells(cells)
				return nil, fmt.Errorf("empty crop window for cell (%d,%d)", row, col)
			}

			region := corrected.Region(image.Rect(win.X, win.Y, win.X+win.Width, win.Y+win.Height))
			normalized := normalizeCell(region)
			region.Close()

			cells = append(cells, Cell{Row: row, Col: col, Image: normalized})
		}
	}
	return cells, nil
}

// normalizeCell standardizes a cropped cell for recognition: cubic resize
// to cellSize, binary threshold, and polarity fixed to dark ink on light
// ground.
func normalizeCell(region gocv.Mat) gocv.Mat {
	resized := gocv.NewMat()
	gocv.Resize(region, &resized, image.Pt(cellSize, cellSize),
		0, 0, gocv.InterpolationCubic)

	gocv.Threshold(resized, &resized, 127, 255, gocv.ThresholdBinary)

	light := gocv.CountNonZero(resized)
	if light < cellSize*cellSize/2 {
		gocv.BitwiseNot(resized, &resized)
	}
	return resized
}
