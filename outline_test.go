package ttfcore

import (
	"testing"

	"github.com/glyphkit/ttfcore/raster"
	"github.com/glyphkit/ttfcore/sfnt"
)

func TestContourVerticesAllOnCurve(t *testing.T) {
	pts := []sfnt.Point{
		{X: 0, Y: 0, OnCurve: true},
		{X: 10, Y: 0, OnCurve: true},
		{X: 10, Y: 10, OnCurve: true},
	}
	vs := contourVertices(pts)
	if vs[0].Op != raster.VertexMove {
		t.Fatalf("first vertex op = %v, want VertexMove", vs[0].Op)
	}
	for _, v := range vs[1:] {
		if v.Op != raster.VertexLine {
			t.Errorf("vertex op = %v, want VertexLine for an all-on-curve contour", v.Op)
		}
	}
	// The contour should close back to the start point.
	last := vs[len(vs)-1]
	if last.X != 0 || last.Y != 0 {
		t.Errorf("contour did not close to start: last point (%v,%v), want (0,0)", last.X, last.Y)
	}
}

func TestContourVerticesImplicitMidpoint(t *testing.T) {
	// Two consecutive off-curve points: a synthetic on-curve midpoint is
	// inserted between them (spec.md §4.5 step 8).
	pts := []sfnt.Point{
		{X: 0, Y: 0, OnCurve: true},
		{X: 5, Y: 10, OnCurve: false},
		{X: 10, Y: 10, OnCurve: false},
		{X: 15, Y: 0, OnCurve: true},
	}
	vs := contourVertices(pts)

	var quads []raster.Vertex
	for _, v := range vs {
		if v.Op == raster.VertexQuadratic {
			quads = append(quads, v)
		}
	}
	if len(quads) != 2 {
		t.Fatalf("expected 2 synthesized quadratics for a run of 2 off-curve points, got %d", len(quads))
	}
	mid := quads[0]
	if mid.X != 7.5 || mid.Y != 10 {
		t.Errorf("synthesized midpoint = (%v,%v), want (7.5,10)", mid.X, mid.Y)
	}
}

func TestContourVerticesOffCurveStart(t *testing.T) {
	// A contour whose first AND last points are both off-curve
	// synthesizes its start point as their midpoint.
	pts := []sfnt.Point{
		{X: 5, Y: 5, OnCurve: false},
		{X: 10, Y: 0, OnCurve: true},
		{X: 0, Y: 10, OnCurve: false},
	}
	vs := contourVertices(pts)
	if vs[0].Op != raster.VertexMove {
		t.Fatalf("first vertex op = %v, want VertexMove", vs[0].Op)
	}
	wantX, wantY := (0.0+5.0)/2, (10.0+5.0)/2
	if vs[0].X != wantX || vs[0].Y != wantY {
		t.Errorf("synthesized start = (%v,%v), want (%v,%v)", vs[0].X, vs[0].Y, wantX, wantY)
	}
}
