package raster

import (
	"math"
	"sort"
)

// maxIntersections bounds a single scanline's crossing list, per the
// stack-bounded buffer requirement of spec.md §5/§9.
const maxIntersections = 64

// Intersection is one crossing of a scanline with an outline edge.
type Intersection struct {
	OutlineID int
	X         float64
	// T is the outline-global parameter (segmentIndex + localT) at the
	// crossing, used by IntersectionPairing to find t-connected partners.
	T float64
}

const dedupXEpsilon = 1e-3

// intersectScanline returns every crossing of horizontal line y with the
// given outlines' segments, sorted ascending by X, with an even count
// (spec.md §4.8). Trivially adjacent duplicates from a scanline landing
// exactly on a shared vertex are dropped.
func intersectScanline(outlines []Outline, y float64) ([]Intersection, error) {
	var hits []Intersection

	for oid, o := range outlines {
		if y < o.YMin || y > o.YMax {
			continue
		}
		for segIdx, seg := range o.Segments {
			ts := segmentRoots(seg, y)
			for _, t := range ts {
				p := seg.pointAt(t)
				hits = append(hits, Intersection{
					OutlineID: oid,
					X:         p.X,
					T:         float64(segIdx) + t,
				})
			}
			if len(hits) > maxIntersections {
				return nil, ErrComplexityExceeded
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].X < hits[j].X })

	hits = dedupAdjacent(hits)

	if len(hits)%2 != 0 {
		return nil, ErrOddIntersectionCount
	}
	if len(hits) > maxIntersections {
		return nil, ErrComplexityExceeded
	}
	return hits, nil
}

// segmentRoots returns the t in [0,1] values at which seg crosses y.
func segmentRoots(seg Segment, y float64) []float64 {
	if seg.Kind == SegmentLine {
		if y < seg.YMin || y > seg.YMax {
			return nil
		}
		y0, y1 := seg.From.Y, seg.To.Y
		if y0 == y1 {
			return nil // horizontal edge contributes no crossing
		}
		t := (y - y0) / (y1 - y0)
		if t < 0 || t > 1 {
			return nil
		}
		return []float64{t}
	}

	// Quadratic: a(1-t)^2 + 2b(1-t)t + ct^2 = y, expanded as
	// t^2(a-2b+c) + t(2b-2a) + (a-y) = 0.
	a, b, c := seg.From.Y, seg.Control.Y, seg.To.Y
	A := a - 2*b + c
	B := 2*b - 2*a
	C := a - y

	var roots []float64
	if A == 0 {
		if B == 0 {
			return nil
		}
		t := -C / B
		if t >= 0 && t <= 1 {
			roots = append(roots, t)
		}
		return roots
	}

	disc := B*B - 4*A*C
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	t1 := (-B + sq) / (2 * A)
	t2 := (-B - sq) / (2 * A)
	for _, t := range []float64{t1, t2} {
		if t >= 0 && t <= 1 {
			roots = append(roots, t)
		}
	}

	if len(roots) == 2 {
		x1 := seg.pointAt(roots[0]).X
		x2 := seg.pointAt(roots[1]).X
		if math.Abs(x1-x2) < dedupXEpsilon {
			roots = roots[:1]
		}
	}
	return roots
}

func dedupAdjacent(hits []Intersection) []Intersection {
	if len(hits) < 2 {
		return hits
	}
	out := hits[:1]
	for _, h := range hits[1:] {
		last := out[len(out)-1]
		if h.OutlineID == last.OutlineID && math.Abs(h.X-last.X) < dedupXEpsilon {
			continue
		}
		out = append(out, h)
	}
	return out
}
