package raster

import "math"

// Point is a location in glyph pixel space: X across, Y down, matching the
// image-space convention produced by OutlineBuilder.
type Point struct {
	X, Y float64
}

// triangleArea returns the (unsigned) area of the triangle p1,p2,p3 via the
// shoelace formula, used to accumulate partial-pixel coverage as the
// rasterizer walks an outline edge against a fixed anchor corner.
func triangleArea(p1, p2, p3 Point) float64 {
	sum := p1.X*(p2.Y-p3.Y) + p2.X*(p3.Y-p1.Y) + p3.X*(p1.Y-p2.Y)
	return math.Abs(sum) / 2
}

// interpolateBoundary returns the point where segment inside->outside
// crosses the boundary of the unit square [0,1]x[0,1], choosing the
// smallest non-negative t. inside is assumed to lie within (or on) the
// square and outside outside it; if no crossing is found (degenerate
// input) outside is returned unchanged.
func interpolateBoundary(inside, outside Point) Point {
	dx := outside.X - inside.X
	dy := outside.Y - inside.Y

	best := math.Inf(1)
	consider := func(t float64) {
		if t < 0 || t > 1 {
			return
		}
		x := inside.X + t*dx
		y := inside.Y + t*dy
		const eps = 1e-9
		if x < -eps || x > 1+eps || y < -eps || y > 1+eps {
			return
		}
		if t < best {
			best = t
		}
	}

	if dx != 0 {
		consider((0 - inside.X) / dx)
		consider((1 - inside.X) / dx)
	}
	if dy != 0 {
		consider((0 - inside.Y) / dy)
		consider((1 - inside.Y) / dy)
	}

	if math.IsInf(best, 1) {
		return outside
	}
	return Point{inside.X + best*dx, inside.Y + best*dy}
}

// minTMiddle returns the midpoint, along a circular parameter space of
// circumference c, between a and b, taking whichever of the two arcs
// (a->b or b->a) is shorter. This is how IntersectionPairing locates the
// point on an outline "between" two t values when the outline wraps
// (t==0 and t==c are the same point).
func minTMiddle(a, b, c float64) float64 {
	fwd := math.Mod(math.Mod(b-a, c)+c, c)
	bwd := math.Mod(math.Mod(a-b, c)+c, c)
	var mid float64
	if fwd <= bwd {
		mid = a + fwd/2
	} else {
		mid = b + bwd/2
	}
	return math.Mod(math.Mod(mid, c)+c, c)
}

// clampCoverage clamps v to [0, weight], the numerical floor spec.md §4.10
// requires so floating-point drift across half-scanlines never pushes a
// pixel's accumulated coverage outside its valid contribution range.
// px, y are the pixel coordinates being clamped, reported by warnDrift in
// debug builds only.
func clampCoverage(px, y int, v, weight float64) float64 {
	if v < 0 {
		warnDrift(px, y, v, weight)
		return 0
	}
	if v > weight {
		warnDrift(px, y, v, weight)
		return weight
	}
	return v
}
