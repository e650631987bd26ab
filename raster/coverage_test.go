package raster

import "testing"

// bufferWriter is a minimal PixelWriter backed by a dense 2D slice, for
// test use only.
type bufferWriter struct {
	w, h int
	buf  []float64
}

func newBufferWriter(w, h int) *bufferWriter {
	return &bufferWriter{w: w, h: h, buf: make([]float64, w*h)}
}

func (b *bufferWriter) idx(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return 0, false
	}
	return y*b.w + x, true
}

func (b *bufferWriter) Set(x, y int, coverage float64) {
	if i, ok := b.idx(x, y); ok {
		b.buf[i] = coverage
	}
}

func (b *bufferWriter) Add(x, y int, coverage float64) {
	if i, ok := b.idx(x, y); ok {
		b.buf[i] += coverage
	}
}

func (b *bufferWriter) Sub(x, y int, coverage float64) {
	if i, ok := b.idx(x, y); ok {
		b.buf[i] -= coverage
	}
}

func (b *bufferWriter) at(x, y int) float64 {
	i, ok := b.idx(x, y)
	if !ok {
		return 0
	}
	return b.buf[i]
}

func squareOutline(x0, y0, x1, y1 float64) Outline {
	segs := []Segment{
		makeLineSegment(Point{x0, y0}, Point{x1, y0}),
		makeLineSegment(Point{x1, y0}, Point{x1, y1}),
		makeLineSegment(Point{x1, y1}, Point{x0, y1}),
		makeLineSegment(Point{x0, y1}, Point{x0, y0}),
	}
	ymin, ymax := outlineYRange(segs)
	return Outline{Segments: segs, YMin: ymin, YMax: ymax}
}

func TestRasterizeSquareCoverageBounds(t *testing.T) {
	o := squareOutline(1.2, 1.2, 8.8, 8.8)
	r := CoverageRasterizer{Outlines: []Outline{o}, Bounds: Bounds{0, 0, 10, 10}}
	w := newBufferWriter(10, 10)
	if err := r.Rasterize(w); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := w.at(x, y)
			if c < -1e-6 || c > 1+1e-6 {
				t.Errorf("coverage at (%d,%d) = %v, outside [0,1]", x, y, c)
			}
		}
	}
	if c := w.at(0, 0); c > 1e-6 {
		t.Errorf("coverage outside the square at (0,0) = %v, want ~0", c)
	}
}

func TestRasterizeIdempotent(t *testing.T) {
	o := squareOutline(1.2, 1.2, 8.8, 8.8)
	r := CoverageRasterizer{Outlines: []Outline{o}, Bounds: Bounds{0, 0, 10, 10}}

	w1 := newBufferWriter(10, 10)
	if err := r.Rasterize(w1); err != nil {
		t.Fatalf("Rasterize (1st): %v", err)
	}
	w2 := newBufferWriter(10, 10)
	if err := r.Rasterize(w2); err != nil {
		t.Fatalf("Rasterize (2nd): %v", err)
	}
	for i := range w1.buf {
		if w1.buf[i] != w2.buf[i] {
			t.Fatalf("rasterizing twice produced different output at index %d: %v vs %v", i, w1.buf[i], w2.buf[i])
		}
	}
}

func TestRasterizeEmptyOutlines(t *testing.T) {
	r := CoverageRasterizer{Bounds: Bounds{0, 0, 4, 4}}
	w := newBufferWriter(4, 4)
	if err := r.Rasterize(w); err != ErrEmptyOutline {
		t.Errorf("Rasterize with no outlines: got %v, want ErrEmptyOutline", err)
	}
}

// TestRasterizeRingCountersHole is spec.md §8 seed test 5's symmetric ring
// (an outer square with a concentric square counter, standing in for a
// glyph like 'o' with no real TTF data to decode it from): the counter
// must read back ~0 coverage while the band between the two contours reads
// full coverage. On the counter's rows PairIntersections pairs edges in
// adjacent x order, so the trapezoids run from the outer edge to the inner
// edge on each side and the counter itself is never painted.
func TestRasterizeRingCountersHole(t *testing.T) {
	outer := squareOutline(1, 1, 13, 13)
	inner := squareOutline(5, 5, 9, 9)
	r := CoverageRasterizer{Outlines: []Outline{outer, inner}, Bounds: Bounds{0, 0, 14, 14}}
	w := newBufferWriter(14, 14)
	if err := r.Rasterize(w); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	// Deep inside the counter: enclosed by both squares, so no trapezoid
	// covers it.
	if c := w.at(7, 7); c < -1e-6 || c > 1e-6 {
		t.Errorf("counter coverage at (7,7) = %v, want ~0", c)
	}
	// In the band between the two squares: only the outer contour covers
	// this pixel, so it should read ~full coverage.
	if c := w.at(3, 3); c < 1-1e-6 {
		t.Errorf("band coverage at (3,3) = %v, want ~1", c)
	}
	// Outside the outer square entirely.
	if c := w.at(0, 0); c > 1e-6 {
		t.Errorf("coverage outside the ring at (0,0) = %v, want ~0", c)
	}
}

// TestRasterizeCoverageSumMatchesArea checks the first of spec.md §8's
// rasterizer invariants: total coverage summed over all pixels equals the
// outline's analytic area, within the tolerance of one row's worth of
// pixels (the bounding box's width).
func TestRasterizeCoverageSumMatchesArea(t *testing.T) {
	const x0, y0, x1, y1 = 1.2, 1.2, 8.8, 8.8
	o := squareOutline(x0, y0, x1, y1)
	r := CoverageRasterizer{Outlines: []Outline{o}, Bounds: Bounds{0, 0, 10, 10}}
	w := newBufferWriter(10, 10)
	if err := r.Rasterize(w); err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	var sum float64
	for _, c := range w.buf {
		sum += c
	}
	area := (x1 - x0) * (y1 - y0)
	tolerance := float64(r.Bounds.MaxX - r.Bounds.MinX) // one row's worth of pixels
	if diff := sum - area; diff < -tolerance || diff > tolerance {
		t.Errorf("total coverage sum = %v, want ~%v (+/- %v)", sum, area, tolerance)
	}
}

// TestRasterizeTranslationInvariance checks spec.md §8's second rasterizer
// invariant: shifting the outline and the pixel writer's output extent by
// the same integer offset shifts the coverage output exactly, pixel for
// pixel.
func TestRasterizeTranslationInvariance(t *testing.T) {
	const dx, dy = 3, 2
	o1 := squareOutline(1.2, 1.2, 8.8, 8.8)
	o2 := squareOutline(1.2+dx, 1.2+dy, 8.8+dx, 8.8+dy)

	r1 := CoverageRasterizer{Outlines: []Outline{o1}, Bounds: Bounds{0, 0, 10, 10}}
	w1 := newBufferWriter(10, 10)
	if err := r1.Rasterize(w1); err != nil {
		t.Fatalf("Rasterize (unshifted): %v", err)
	}

	r2 := CoverageRasterizer{Outlines: []Outline{o2}, Bounds: Bounds{0, 0, 10 + dx, 10 + dy}}
	w2 := newBufferWriter(10+dx, 10+dy)
	if err := r2.Rasterize(w2); err != nil {
		t.Fatalf("Rasterize (shifted): %v", err)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			got, want := w2.at(x+dx, y+dy), w1.at(x, y)
			if got != want {
				t.Errorf("shifted coverage at (%d,%d) = %v, want %v (from unshifted (%d,%d))", x+dx, y+dy, got, want, x, y)
			}
		}
	}
}
