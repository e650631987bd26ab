package raster

import "math"

// halfScanlineWeight is the coverage contribution of one of the two
// half-scanlines per pixel row (spec.md §4.10).
const halfScanlineWeight = 0.5

// PixelWriter is the output sink for rasterized coverage. Coordinates are
// glyph-local pixel indices with the origin at the glyph bounding box's
// top-left, Y-down (spec.md §6).
type PixelWriter interface {
	Set(x, y int, coverage float64)
	Add(x, y int, coverage float64)
	Sub(x, y int, coverage float64)
}

// Bounds is a glyph's pixel-space bounding box, [MinX,MaxX) x [MinY,MaxY).
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// CoverageRasterizer converts a set of Outlines into per-pixel analytic
// coverage values written to a PixelWriter (spec.md §4.10).
type CoverageRasterizer struct {
	Outlines []Outline
	Bounds   Bounds
}

// Rasterize clears the rasterizer's bounding box to zero and fills it with
// the outlines' analytic coverage, two half-scanlines per pixel row.
func (r *CoverageRasterizer) Rasterize(w PixelWriter) error {
	if len(r.Outlines) == 0 {
		return ErrEmptyOutline
	}

	for y := r.Bounds.MinY; y < r.Bounds.MaxY; y++ {
		for x := r.Bounds.MinX; x < r.Bounds.MaxX; x++ {
			w.Set(x, y, 0)
		}
	}

	for y := r.Bounds.MinY; y < r.Bounds.MaxY; y++ {
		fy := float64(y)
		if err := r.rasterizeHalfScanlinePair(fy, fy+0.5, y, w); err != nil {
			return err
		}
		if err := r.rasterizeHalfScanlinePair(fy+0.5, fy+1.0, y, w); err != nil {
			return err
		}
	}
	return nil
}

func (r *CoverageRasterizer) rasterizeHalfScanlinePair(yUpper, yLower float64, row int, w PixelWriter) error {
	upper, err := intersectScanline(r.Outlines, yUpper)
	if err != nil {
		return err
	}
	lower, err := intersectScanline(r.Outlines, yLower)
	if err != nil {
		return err
	}
	if len(upper) == 0 && len(lower) == 0 {
		return nil
	}

	conns, err := PairIntersections(upper, lower, r.Outlines, yUpper, yLower)
	if err != nil {
		return err
	}

	for _, tz := range conns.Trapezoids {
		paintTrapezoid(tz, row, halfScanlineWeight, w)
	}
	for _, p := range conns.Pairs {
		paintTwoPointFigure(r.Outlines, p, row, halfScanlineWeight, w)
	}
	return nil
}

// paintTrapezoid fills the pixel row between a 4-point figure's left and
// right edges: anti-aliased partial coverage at the edge pixels, full
// half-scanline weight for whole pixels in between. A trapezoid marked
// InvertCoverage (nested inside another, per markHoles) subtracts
// instead of adding, carving a counter out of the enclosing fill.
func paintTrapezoid(tz FourPointFigure, row int, weight float64, w PixelWriter) {
	write := w.Add
	if tz.InvertCoverage {
		write = w.Sub
	}

	leftX := (tz.UpperLeft.X + tz.LowerLeft.X) / 2
	rightX := (tz.UpperRight.X + tz.LowerRight.X) / 2
	if rightX < leftX {
		leftX, rightX = rightX, leftX
	}

	pxStart := int(math.Floor(leftX))
	pxEnd := int(math.Floor(rightX))

	if pxStart == pxEnd {
		frac := ((leftX - float64(pxStart)) + (rightX - float64(pxStart))) / 2
		coverage := clampCoverage(pxStart, row, weight*(1-frac), weight)
		write(pxStart, row, coverage)
		return
	}

	leftFrac := leftX - float64(pxStart)
	write(pxStart, row, clampCoverage(pxStart, row, weight*(1-leftFrac), weight))

	for px := pxStart + 1; px < pxEnd; px++ {
		write(px, row, weight)
	}

	rightFrac := rightX - float64(pxEnd)
	write(pxEnd, row, clampCoverage(pxEnd, row, weight*rightFrac, weight))
}

// paintTwoPointFigure walks the outline between the figure's two
// intersections, accumulating triangle-area coverage against a fixed
// anchor at the right edge of whichever pixel column is being crossed
// (spec.md §4.10's anchor-at-(1.0, y_intersect) convention), splitting at
// pixel-column boundaries in accumulateSegment.
func paintTwoPointFigure(outlines []Outline, fig TwoPointFigure, row int, weight float64, w PixelWriter) {
	if fig.P1.OutlineID < 0 || fig.P1.OutlineID >= len(outlines) {
		return
	}
	o := outlines[fig.P1.OutlineID]
	c := o.TotalT()
	if c == 0 {
		return
	}

	// Walk in whichever direction (P1->P2 or P2->P1, wrapping mod c) is
	// the shorter arc, matching the direction IntersectionPairing used to
	// establish this figure.
	startT, endT := fig.P1.T, fig.P2.T
	fwd := math.Mod(math.Mod(endT-startT, c)+c, c)
	bwd := math.Mod(math.Mod(startT-endT, c)+c, c)
	span := fwd
	if bwd < fwd {
		startT, endT = fig.P2.T, fig.P1.T
		span = bwd
	}

	const samplesPerPixel = 3
	pixelSpan := math.Abs(fig.P2.X-fig.P1.X) + 1
	steps := int(pixelSpan*samplesPerPixel) + 1
	if steps < 1 {
		steps = 1
	}

	yIntersect := o.PointAt(fig.P1.T).Y // both intersections share the same scanline Y
	contributions := map[int]float64{}

	prev := o.PointAt(startT)
	for i := 1; i <= steps; i++ {
		t := startT + span*float64(i)/float64(steps)
		cur := o.PointAt(t)
		accumulateSegment(prev, cur, yIntersect, contributions)
		prev = cur
	}

	for px, area := range contributions {
		coverage := clampCoverage(px, row, area, weight)
		if fig.InvertCoverage {
			w.Sub(px, row, coverage)
		} else {
			w.Add(px, row, coverage)
		}
	}
}

// accumulateSegment adds the triangle-area coverage contribution of the
// straight sub-step p0->p1 to whichever pixel column(s) it crosses,
// measured against the fixed anchor (1.0, anchorY) within each column's
// local unit square (spec.md §4.10).
func accumulateSegment(p0, p1 Point, anchorY float64, contributions map[int]float64) {
	a, b := p0, p1
	lo, hi := a.X, b.X
	if hi < lo {
		lo, hi = hi, lo
		a, b = b, a
	}
	if hi == lo {
		return
	}

	px := int(math.Floor(lo))
	cur := a
	for cur.X < hi {
		pixelRight := float64(px + 1)
		segHi := math.Min(hi, pixelRight)
		frac := (segHi - cur.X) / (b.X - a.X)
		next := Point{X: segHi, Y: cur.Y + frac*(b.Y-cur.Y)}

		localA := Point{X: clampUnit(cur.X - float64(px)), Y: cur.Y - anchorY}
		localB := Point{X: clampUnit(next.X - float64(px)), Y: next.Y - anchorY}
		anchor := Point{X: 1, Y: 0}
		contributions[px] += triangleArea(anchor, localA, localB)

		cur = next
		if segHi >= hi {
			break
		}
		px++
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
