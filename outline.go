package ttfcore

import (
	"github.com/glyphkit/ttfcore/raster"
	"github.com/glyphkit/ttfcore/sfnt"
)

// glyphVertices expands a decoded simple glyph's contours into a Move/
// Line/Quadratic vertex stream, honouring the implicit on-curve point
// rule: two consecutive off-curve points imply a synthetic on-curve
// midpoint between them, and a contour may start off-curve (spec.md
// §4.5 step 8).
func glyphVertices(g *sfnt.Glyph) []raster.Vertex {
	var vertices []raster.Vertex
	start := 0
	for _, end := range g.End {
		pts := g.Points[start:end]
		start = end
		if len(pts) == 0 {
			continue
		}
		vertices = append(vertices, contourVertices(pts)...)
	}
	return vertices
}

func contourVertices(pts []sfnt.Point) []raster.Vertex {
	n := len(pts)
	if n == 0 {
		return nil
	}

	// Find a starting on-curve point; synthesize one from the first/last
	// neighbours if the contour begins off-curve.
	var startPt sfnt.Point
	firstIdx := 0
	if pts[0].OnCurve {
		startPt = pts[0]
	} else if pts[n-1].OnCurve {
		startPt = pts[n-1]
		firstIdx = n - 1
	} else {
		startPt = midpoint(pts[n-1], pts[0])
		firstIdx = -1 // synthetic point, not one of pts
	}

	vertices := []raster.Vertex{{Op: raster.VertexMove, X: startPt.X, Y: startPt.Y}}

	// Walk the contour starting just after firstIdx (or from index 0 if
	// the start point was synthetic), emitting a Line for each on-curve
	// point and a Quadratic (synthesizing the midpoint) for each run of
	// off-curve points.
	order := make([]int, 0, n)
	if firstIdx >= 0 {
		for i := 1; i <= n; i++ {
			order = append(order, (firstIdx+i)%n)
		}
	} else {
		for i := 0; i < n; i++ {
			order = append(order, i)
		}
	}

	var pendingControl *sfnt.Point
	for _, idx := range order {
		p := pts[idx]
		if p.OnCurve {
			if pendingControl != nil {
				vertices = append(vertices, raster.Vertex{
					Op:       raster.VertexQuadratic,
					ControlX: pendingControl.X, ControlY: pendingControl.Y,
					X: p.X, Y: p.Y,
				})
				pendingControl = nil
			} else {
				vertices = append(vertices, raster.Vertex{Op: raster.VertexLine, X: p.X, Y: p.Y})
			}
			continue
		}
		if pendingControl != nil {
			mid := midpoint(*pendingControl, p)
			vertices = append(vertices, raster.Vertex{
				Op:       raster.VertexQuadratic,
				ControlX: pendingControl.X, ControlY: pendingControl.Y,
				X: mid.X, Y: mid.Y,
			})
		}
		ctrl := p
		pendingControl = &ctrl
	}

	if pendingControl != nil {
		vertices = append(vertices, raster.Vertex{
			Op:       raster.VertexQuadratic,
			ControlX: pendingControl.X, ControlY: pendingControl.Y,
			X: startPt.X, Y: startPt.Y,
		})
	}
	return vertices
}

func midpoint(a, b sfnt.Point) sfnt.Point {
	return sfnt.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, OnCurve: true}
}
