package raster

import "math"

// VertexOp identifies the drawing operation a Vertex performs, mirroring
// the contour op-stream the glyph decoder produces (spec.md §4.5/§4.6):
// a contour is a Move followed by any number of Line/Quadratic ops.
type VertexOp int

const (
	VertexMove VertexOp = iota
	VertexLine
	VertexQuadratic
)

// Vertex is one step of a decoded glyph contour, in FUnits (Y-up). For
// VertexQuadratic, ControlX/ControlY is the off-curve control point.
type Vertex struct {
	Op                 VertexOp
	X, Y               float64
	ControlX, ControlY float64
}

// SegmentKind distinguishes a straight edge from a quadratic curve within
// a built Outline.
type SegmentKind int

const (
	SegmentLine SegmentKind = iota
	SegmentQuadratic
)

// Segment is one edge of an Outline, already transformed into glyph pixel
// space (Y-down). Control is the zero Point for SegmentLine.
type Segment struct {
	Kind       SegmentKind
	From, To   Point
	Control    Point
	YMin, YMax float64

	// TPerPixel is the local parameter increment corresponding to roughly
	// one pixel of travel along the segment, clamped to <= 1 (spec.md
	// §4.6). It scales how finely CoverageRasterizer sub-samples an edge.
	TPerPixel float64
}

// Outline is one closed contour of a glyph: a sequence of Segments whose
// global t coordinate is segmentIndex + localT, wrapping modulo
// len(Segments).
type Outline struct {
	Segments   []Segment
	YMin, YMax float64
}

// TotalT is the modulus of this outline's global t coordinate: one unit
// of t per segment.
func (o Outline) TotalT() float64 { return float64(len(o.Segments)) }

// PointAt evaluates the outline at global parameter t (wrapped modulo
// TotalT), returning the point in glyph pixel space.
func (o Outline) PointAt(t float64) Point {
	total := o.TotalT()
	t = math.Mod(math.Mod(t, total)+total, total)
	idx := int(math.Floor(t))
	if idx >= len(o.Segments) {
		idx = len(o.Segments) - 1
	}
	local := t - float64(idx)
	return o.Segments[idx].pointAt(local)
}

func (s Segment) pointAt(t float64) Point {
	switch s.Kind {
	case SegmentLine:
		return Point{
			X: s.From.X + t*(s.To.X-s.From.X),
			Y: s.From.Y + t*(s.To.Y-s.From.Y),
		}
	default:
		u := 1 - t
		return Point{
			X: u*u*s.From.X + 2*u*t*s.Control.X + t*t*s.To.X,
			Y: u*u*s.From.Y + 2*u*t*s.Control.Y + t*t*s.To.Y,
		}
	}
}

// OutlineBuilder assembles Outlines from a decoded glyph's vertex stream,
// flipping Y into image space and scaling FUnits to pixels (spec.md §4.6).
// The output is local to the glyph's pixel bounding box: YTop and XLeft
// are that box's top and left edge, already in pixel space, so a built
// Outline's coordinates land directly in [0, width) x [0, height).
type OutlineBuilder struct {
	Scale      float64
	YTop       float64 // pixel Y of the bounding box's top edge (image space)
	XLeft      float64 // pixel X of the bounding box's left edge
}

// Build transforms vertices into a set of closed Outlines. A Move starts a
// new outline; each subsequent Line/Quadratic vertex appends a segment
// from the previous pen position.
func (b OutlineBuilder) Build(vertices []Vertex) ([]Outline, error) {
	var outlines []Outline
	var cur *Outline
	var pen Point
	var start Point

	flip := func(x, y float64) Point {
		return Point{X: x*b.Scale - b.XLeft, Y: b.YTop - y*b.Scale}
	}

	flushContour := func() {
		if cur == nil {
			return
		}
		// Close the contour back to its starting point if the last vertex
		// didn't already land there.
		if pen != start && len(cur.Segments) > 0 {
			cur.Segments = append(cur.Segments, makeLineSegment(pen, start))
		}
		cur.YMin, cur.YMax = outlineYRange(cur.Segments)
		outlines = append(outlines, *cur)
		cur = nil
	}

	for _, v := range vertices {
		switch v.Op {
		case VertexMove:
			flushContour()
			p := flip(v.X, v.Y)
			cur = &Outline{}
			pen = p
			start = p
		case VertexLine:
			if cur == nil {
				continue
			}
			p := flip(v.X, v.Y)
			cur.Segments = append(cur.Segments, makeLineSegment(pen, p))
			pen = p
		case VertexQuadratic:
			if cur == nil {
				continue
			}
			ctrl := flip(v.ControlX, v.ControlY)
			p := flip(v.X, v.Y)
			cur.Segments = append(cur.Segments, makeQuadraticSegment(pen, ctrl, p))
			pen = p
		}
	}
	flushContour()
	return outlines, nil
}

func makeLineSegment(from, to Point) Segment {
	dist := math.Hypot(to.X-from.X, to.Y-from.Y)
	tPerPixel := 1.0
	if dist > 1 {
		tPerPixel = 1 / dist
	}
	ymin, ymax := from.Y, to.Y
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	return Segment{
		Kind: SegmentLine, From: from, To: to,
		YMin: ymin, YMax: ymax, TPerPixel: tPerPixel,
	}
}

func makeQuadraticSegment(from, control, to Point) Segment {
	const samples = 10
	length := 0.0
	prev := from
	for i := 1; i <= samples; i++ {
		t := float64(i) / samples
		u := 1 - t
		cur := Point{
			X: u*u*from.X + 2*u*t*control.X + t*t*to.X,
			Y: u*u*from.Y + 2*u*t*control.Y + t*t*to.Y,
		}
		length += math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
		prev = cur
	}
	tPerPixel := 1.0
	if length > 1 {
		tPerPixel = 1 / length
	}

	ymin, ymax := from.Y, to.Y
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	// Closed-form extremum: y(t) = a + t(2b-2a) + t^2(a-2b+c), with
	// a,b,c the y-coordinates of from, control, to.
	a, bb, c := from.Y, control.Y, to.Y
	denom := a - 2*bb + c
	if denom != 0 {
		tExt := (a - bb) / denom
		if tExt > 0 && tExt < 1 {
			u := 1 - tExt
			yExt := u*u*a + 2*u*tExt*bb + tExt*tExt*c
			if yExt < ymin {
				ymin = yExt
			}
			if yExt > ymax {
				ymax = yExt
			}
		}
	}

	return Segment{
		Kind: SegmentQuadratic, From: from, Control: control, To: to,
		YMin: ymin, YMax: ymax, TPerPixel: tPerPixel,
	}
}

func outlineYRange(segs []Segment) (ymin, ymax float64) {
	if len(segs) == 0 {
		return 0, 0
	}
	ymin, ymax = segs[0].YMin, segs[0].YMax
	for _, s := range segs[1:] {
		if s.YMin < ymin {
			ymin = s.YMin
		}
		if s.YMax > ymax {
			ymax = s.YMax
		}
	}
	return ymin, ymax
}
