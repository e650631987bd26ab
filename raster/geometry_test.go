package raster

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMinTMiddle(t *testing.T) {
	cases := []struct {
		a, b, c, want float64
	}{
		{0.2, 0.5, 1.0, 0.35},
		{0.8, 0.2, 1.0, 0.0},
		{16.0, 2.0, 20.0, 19.0},
	}
	for _, c := range cases {
		got := minTMiddle(c.a, c.b, c.c)
		if !almostEqual(got, c.want) {
			t.Errorf("minTMiddle(%v, %v, %v) = %v, want %v", c.a, c.b, c.c, got, c.want)
		}
	}
}

func TestTriangleAreaCollinear(t *testing.T) {
	got := triangleArea(Point{1, 10}, Point{1, 20}, Point{1, 30})
	if got != 0.0 {
		t.Errorf("triangleArea of collinear points = %v, want 0", got)
	}
}

func TestTriangleAreaNonDegenerate(t *testing.T) {
	// A right triangle with legs 2 and 3 has area 3.
	got := triangleArea(Point{0, 0}, Point{2, 0}, Point{0, 3})
	if !almostEqual(got, 3.0) {
		t.Errorf("triangleArea = %v, want 3.0", got)
	}
}

func TestInterpolateBoundary(t *testing.T) {
	got := interpolateBoundary(Point{0.5, 0.5}, Point{2.0, 0.5})
	want := Point{1.0, 0.5}
	if !almostEqual(got.X, want.X) || !almostEqual(got.Y, want.Y) {
		t.Errorf("interpolateBoundary = %+v, want %+v", got, want)
	}
}

func TestClampCoverage(t *testing.T) {
	if got := clampCoverage(0, 0, -0.1, 0.5); got != 0 {
		t.Errorf("clampCoverage(-0.1) = %v, want 0", got)
	}
	if got := clampCoverage(0, 0, 0.7, 0.5); got != 0.5 {
		t.Errorf("clampCoverage(0.7, weight 0.5) = %v, want 0.5", got)
	}
	if got := clampCoverage(0, 0, 0.3, 0.5); got != 0.3 {
		t.Errorf("clampCoverage(0.3, weight 0.5) = %v, want 0.3", got)
	}
}
