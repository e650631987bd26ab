package raster

import (
	"math"
	"testing"
)

func TestQuadraticIntersectionAtEndpoint(t *testing.T) {
	// Seed test from spec.md §8.4: a bezier whose y=0 crossing lands
	// exactly at its start point (t=0).
	seg := Segment{
		Kind:    SegmentQuadratic,
		From:    Point{X: 16.882635839283466, Y: 0},
		Control: Point{X: 20.472, Y: 0},
		To:      Point{X: 23.494, Y: 1.208},
	}
	roots := segmentRoots(seg, 0)
	if len(roots) == 0 {
		t.Fatalf("segmentRoots returned no roots for y=0")
	}
	p := seg.pointAt(roots[0])
	if math.Abs(p.X-16.8826) > 1e-3 {
		t.Errorf("intersection x = %v, want ~16.8826", p.X)
	}
}

func TestIntersectScanlineEvenCount(t *testing.T) {
	// A square contour: 4 line segments.
	square := Outline{
		Segments: []Segment{
			makeLineSegment(Point{0, 0}, Point{10, 0}),
			makeLineSegment(Point{10, 0}, Point{10, 10}),
			makeLineSegment(Point{10, 10}, Point{0, 10}),
			makeLineSegment(Point{0, 10}, Point{0, 0}),
		},
		YMin: 0, YMax: 10,
	}
	hits, err := intersectScanline([]Outline{square}, 5)
	if err != nil {
		t.Fatalf("intersectScanline: %v", err)
	}
	if len(hits)%2 != 0 {
		t.Fatalf("intersection count %d is odd", len(hits))
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 intersections for a square at mid-height, got %d", len(hits))
	}
	if hits[0].X != 0 || hits[1].X != 10 {
		t.Errorf("intersections at unexpected x: %+v", hits)
	}
}

func TestIntersectScanlineOutsideRange(t *testing.T) {
	square := Outline{
		Segments: []Segment{
			makeLineSegment(Point{0, 0}, Point{10, 0}),
			makeLineSegment(Point{10, 0}, Point{10, 10}),
			makeLineSegment(Point{10, 10}, Point{0, 10}),
			makeLineSegment(Point{0, 10}, Point{0, 0}),
		},
		YMin: 0, YMax: 10,
	}
	hits, err := intersectScanline([]Outline{square}, 20)
	if err != nil {
		t.Fatalf("intersectScanline: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("expected no intersections outside the outline's y-range, got %d", len(hits))
	}
}
