// Package geometry provides the basic geometric types shared by the
// vision pipeline.
package geometry

import (
	"math"
	"sort"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// RectInt represents a rectangle with integer coordinates.
type RectInt struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ClampTo clips the rectangle to a bounding width/height. A rectangle
// entirely outside the bounds collapses to zero size.
func (r RectInt) ClampTo(width, height int) RectInt {
	x0 := max(r.X, 0)
	y0 := max(r.Y, 0)
	x1 := min(r.X+r.Width, width)
	y1 := min(r.Y+r.Height, height)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether the rectangle has no area.
func (r RectInt) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Quad is an ordered quadrilateral: top-left, top-right, bottom-right,
// bottom-left.
type Quad [4]Point2D

// OrderQuad orders four arbitrary corner points into TL, TR, BR, BL.
// Points are split into a top and a bottom pair by Y, then each pair is
// split by X.
func OrderQuad(points []Point2D) (Quad, bool) {
	if len(points) != 4 {
		return Quad{}, false
	}

	sorted := make([]Point2D, 4)
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Y < sorted[j].Y
	})

	top := sorted[:2]
	bottom := sorted[2:]
	if top[0].X > top[1].X {
		top[0], top[1] = top[1], top[0]
	}
	if bottom[0].X > bottom[1].X {
		bottom[0], bottom[1] = bottom[1], bottom[0]
	}

	return Quad{top[0], top[1], bottom[1], bottom[0]}, true
}

// Area returns the area of the quadrilateral via the shoelace formula.
func (q Quad) Area() float64 {
	var sum float64
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		sum += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	return math.Abs(sum) / 2
}

// AspectRatio returns the ratio of the mean horizontal edge length to the
// mean vertical edge length.
func (q Quad) AspectRatio() float64 {
	w := (q[0].Distance(q[1]) + q[3].Distance(q[2])) / 2
	h := (q[0].Distance(q[3]) + q[1].Distance(q[2])) / 2
	if h == 0 {
		return math.Inf(1)
	}
	return w / h
}
