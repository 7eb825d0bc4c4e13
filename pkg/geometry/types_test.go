package geometry

import (
	"math"
	"testing"
)

func TestOrderQuad(t *testing.T) {
	// Corners of a skewed quadrilateral in scrambled order.
	scrambled := []Point2D{
		{X: 410, Y: 395}, // BR
		{X: 12, Y: 18},   // TL
		{X: 5, Y: 402},   // BL
		{X: 398, Y: 9},   // TR
	}

	q, ok := OrderQuad(scrambled)
	if !ok {
		t.Fatal("OrderQuad rejected 4 points")
	}

	want := Quad{
		{X: 12, Y: 18},
		{X: 398, Y: 9},
		{X: 410, Y: 395},
		{X: 5, Y: 402},
	}
	if q != want {
		t.Errorf("OrderQuad = %v, want %v", q, want)
	}
}

func TestOrderQuadRejectsWrongCount(t *testing.T) {
	if _, ok := OrderQuad([]Point2D{{X: 1, Y: 1}}); ok {
		t.Error("OrderQuad accepted 1 point")
	}
}

func TestQuadArea(t *testing.T) {
	square := Quad{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := square.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("Area = %v, want 100", got)
	}
}

func TestQuadAspectRatio(t *testing.T) {
	wide := Quad{{0, 0}, {20, 0}, {20, 10}, {0, 10}}
	if got := wide.AspectRatio(); math.Abs(got-2) > 1e-9 {
		t.Errorf("AspectRatio = %v, want 2", got)
	}
}

func TestRectIntClampTo(t *testing.T) {
	r := RectInt{X: -5, Y: 10, Width: 20, Height: 200}
	clamped := r.ClampTo(100, 100)
	want := RectInt{X: 0, Y: 10, Width: 15, Height: 90}
	if clamped != want {
		t.Errorf("ClampTo = %v, want %v", clamped, want)
	}

	outside := RectInt{X: 500, Y: 500, Width: 10, Height: 10}
	if !outside.ClampTo(100, 100).Empty() {
		t.Error("rectangle outside bounds should clamp to empty")
	}
}
