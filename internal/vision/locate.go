package vision

import (
	"errors"
	"fmt"
	"image"

	"sudoku-scan/pkg/geometry"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// CorrectedSize is the edge length of the perspective-corrected square
// raster the cells are cut from.
const CorrectedSize = 450

// Plausibility bounds for the puzzle boundary relative to the image.
const (
	minBoundaryAreaFrac = 0.10
	maxBoundaryAreaFrac = 0.95
	minBoundaryAspect   = 0.5
	maxBoundaryAspect   = 2.0
)

// ErrGridNotFound indicates no plausible quadrilateral puzzle boundary.
var ErrGridNotFound = errors.New("no puzzle boundary found")

// LocateGrid finds the dominant quadrilateral boundary in the binarized
// raster and returns its corners ordered TL, TR, BR, BL.
func LocateGrid(binary gocv.Mat) (geometry.Quad, error) {
	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	imgArea := float64(binary.Cols() * binary.Rows())
	var bestCorners []geometry.Point2D
	var bestArea float64

	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < imgArea*minBoundaryAreaFrac || area > imgArea*maxBoundaryAreaFrac {
			continue
		}
		if area <= bestArea {
			continue
		}

		epsilon := 0.02 * gocv.ArcLength(contour, true)
		approx := gocv.ApproxPolyDP(contour, epsilon, true)
		if approx.Size() == 4 {
			corners := make([]geometry.Point2D, 4)
			for j := 0; j < 4; j++ {
				pt := approx.At(j)
				corners[j] = geometry.Point2D{X: float64(pt.X), Y: float64(pt.Y)}
			}
			bestCorners = corners
			bestArea = area
		}
		approx.Close()
	}

	if bestCorners == nil {
		return geometry.Quad{}, ErrGridNotFound
	}

	quad, ok := geometry.OrderQuad(bestCorners)
	if !ok {
		return geometry.Quad{}, ErrGridNotFound
	}
	if ar := quad.AspectRatio(); ar < minBoundaryAspect || ar > maxBoundaryAspect {
		return geometry.Quad{}, fmt.Errorf("%w: implausible aspect ratio %.2f", ErrGridNotFound, ar)
	}
	return quad, nil
}

// CorrectPerspective warps the grayscale raster so the quad maps onto a
// CorrectedSize square. The caller owns the returned Mat.
func CorrectPerspective(gray gocv.Mat, quad geometry.Quad) (gocv.Mat, error) {
	h, err := homography(quad, CorrectedSize)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("perspective solve: %w", err)
	}

	transform := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer transform.Close()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			transform.SetDoubleAt(r, c, h[r*3+c])
		}
	}

	corrected := gocv.NewMat()
	gocv.WarpPerspective(gray, &corrected, transform,
		image.Point{X: CorrectedSize, Y: CorrectedSize})
	return corrected, nil
}

// homography solves for the 3x3 perspective transform mapping the quad
// corners onto the corners of a size x size square. With h22 fixed at 1
// the four correspondences give an 8x8 linear system:
//
//	u = (h00*x + h01*y + h02) / (h20*x + h21*y + 1)
//	v = (h10*x + h11*y + h12) / (h20*x + h21*y + 1)
func homography(quad geometry.Quad, size int) ([9]float64, error) {
	s := float64(size - 1)
	dst := [4]geometry.Point2D{
		{X: 0, Y: 0},
		{X: s, Y: 0},
		{X: s, Y: s},
		{X: 0, Y: s},
	}

	A := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		x, y := quad[i].X, quad[i].Y
		u, v := dst[i].X, dst[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		A.Set(i*2, 6, -u*x)
		A.Set(i*2, 7, -u*y)
		b.SetVec(i*2, u)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		A.Set(i*2+1, 6, -v*x)
		A.Set(i*2+1, 7, -v*y)
		b.SetVec(i*2+1, v)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, b); err != nil {
		return [9]float64{}, fmt.Errorf("degenerate corner configuration: %w", err)
	}

	var h [9]float64
	for i := 0; i < 8; i++ {
		h[i] = params.AtVec(i)
	}
	h[8] = 1
	return h, nil
}
