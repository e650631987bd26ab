package raster

import (
	"math"
	"sort"
)

// maxPairFigures and maxConnections bound the per-scanline-pair output,
// per the stack-bounded buffer requirement of spec.md §5/§9.
const (
	maxPairFigures = 32
	maxConnections = 32
)

// scanlineSide records which of the two half-scanlines an intersection
// was found on.
type scanlineSide int

const (
	sideUpper scanlineSide = iota
	sideLower
)

type sidedIntersection struct {
	Intersection
	side    scanlineSide
	matched bool
}

// TwoPointFigure is a connection whose two intersections both lie on the
// same half-scanline: the outline enters and exits through it, looping
// within the strip rather than crossing to the other half-scanline.
type TwoPointFigure struct {
	P1, P2         Intersection
	InvertCoverage bool
}

// FourPointFigure is a trapezoid spanning both half-scanlines: a left
// edge (UpperLeft-LowerLeft) and a right edge (UpperRight-LowerRight).
type FourPointFigure struct {
	UpperLeft, UpperRight Intersection
	LowerLeft, LowerRight Intersection

	// InvertCoverage marks a trapezoid whose x-span is nested an odd
	// number of times inside other trapezoids' x-spans in the same
	// scanline pair: a counter contour (e.g. the bowl of an 'o') fully
	// enclosed by an outer contour, rather than a separate disjoint
	// stroke (spec.md §4.9).
	InvertCoverage bool
}

// Connections holds the figures produced by pairing one pair of adjacent
// half-scanlines. Trapezoids always precede Pairs, so a caller filling
// coverage left to right applies carved holes after the base fill
// (spec.md §4.9's ordering invariant).
type Connections struct {
	Trapezoids []FourPointFigure
	Pairs      []TwoPointFigure
}

// PairIntersections combines the intersection lists of two adjacent
// half-scanlines (y_upper above y_lower) into connection figures,
// per spec.md §4.9.
func PairIntersections(upper, lower []Intersection, outlines []Outline, yUpper, yLower float64) (Connections, error) {
	if len(upper)+len(lower) > maxIntersections {
		return Connections{}, ErrComplexityExceeded
	}

	byOutline := map[int][]*sidedIntersection{}
	for _, h := range upper {
		si := &sidedIntersection{Intersection: h, side: sideUpper}
		byOutline[h.OutlineID] = append(byOutline[h.OutlineID], si)
	}
	for _, h := range lower {
		si := &sidedIntersection{Intersection: h, side: sideLower}
		byOutline[h.OutlineID] = append(byOutline[h.OutlineID], si)
	}

	type halfConn struct {
		upper, lower Intersection
	}
	var pairs []TwoPointFigure
	var halves []halfConn

	for oid, group := range byOutline {
		c := float64(0)
		if oid < len(outlines) {
			c = outlines[oid].TotalT()
		}
		if c == 0 {
			continue
		}

		for {
			// Find the globally closest unmatched pair by circular
			// t-distance; this is the greedy "t-connected, minimizing
			// |t_a - t_b|" rule of spec.md §4.9.
			bestI, bestJ := -1, -1
			bestDist := math.Inf(1)
			for i := 0; i < len(group); i++ {
				if group[i].matched {
					continue
				}
				for j := i + 1; j < len(group); j++ {
					if group[j].matched {
						continue
					}
					d := circularTDist(group[i].T, group[j].T, c)
					if d < bestDist {
						bestDist = d
						bestI, bestJ = i, j
					}
				}
			}
			if bestI < 0 {
				break
			}

			a, b := group[bestI], group[bestJ]
			mid := minTMiddle(a.T, b.T, c)
			if oid >= len(outlines) {
				break
			}
			midY := outlines[oid].PointAt(mid).Y
			lo, hi := yUpper, yLower
			if lo > hi {
				lo, hi = hi, lo
			}
			if midY < lo || midY > hi {
				// Not a valid pairing at this strip; leave both
				// unmatched (a later scanline pass may need a
				// different partner for these via the caller's
				// own handling of its outline). Stop trying this
				// group to avoid an infinite loop.
				break
			}

			a.matched, b.matched = true, true
			if a.side == b.side {
				p1, p2 := a.Intersection, b.Intersection
				if p2.X < p1.X {
					p1, p2 = p2, p1
				}
				pairs = append(pairs, TwoPointFigure{P1: p1, P2: p2})
			} else {
				up, down := a.Intersection, b.Intersection
				if a.side == sideLower {
					up, down = down, up
				}
				halves = append(halves, halfConn{upper: up, lower: down})
			}
		}
	}

	if len(pairs) > maxPairFigures {
		return Connections{}, ErrComplexityExceeded
	}

	// Pair up half-connections (one upper+lower edge each) into
	// trapezoids: two adjacent half-connections (by x) form the left and
	// right edges of a figure.
	sort.Slice(halves, func(i, j int) bool {
		return avgX(halves[i].upper, halves[i].lower) < avgX(halves[j].upper, halves[j].lower)
	})
	var trapezoids []FourPointFigure
	for i := 0; i+1 < len(halves); i += 2 {
		left, right := halves[i], halves[i+1]
		trapezoids = append(trapezoids, FourPointFigure{
			UpperLeft: left.upper, LowerLeft: left.lower,
			UpperRight: right.upper, LowerRight: right.lower,
		})
	}

	if len(trapezoids)+len(pairs) > maxConnections {
		return Connections{}, ErrComplexityExceeded
	}

	markHoles(trapezoids, pairs)

	return Connections{Trapezoids: trapezoids, Pairs: pairs}, nil
}

func circularTDist(a, b, c float64) float64 {
	fwd := math.Mod(math.Mod(b-a, c)+c, c)
	bwd := math.Mod(math.Mod(a-b, c)+c, c)
	if fwd < bwd {
		return fwd
	}
	return bwd
}

func avgX(upper, lower Intersection) float64 {
	return (upper.X + lower.X) / 2
}

// trapezoidXSpan returns a 4-point figure's horizontal extent: the
// smallest and largest X among its four corners.
func trapezoidXSpan(tz FourPointFigure) (lo, hi float64) {
	lo = math.Min(math.Min(tz.UpperLeft.X, tz.LowerLeft.X), math.Min(tz.UpperRight.X, tz.LowerRight.X))
	hi = math.Max(math.Max(tz.UpperLeft.X, tz.LowerLeft.X), math.Max(tz.UpperRight.X, tz.LowerRight.X))
	return lo, hi
}

// markHoles sets InvertCoverage on any figure nested an odd number of
// times inside other trapezoids' x-spans, per spec.md §4.9: a contour
// (2-point loop or a separate, fully enclosed outline's own trapezoid)
// strictly inside another trapezoid carves a hole rather than adding
// fill. Odd nesting depth handles a counter-within-a-counter (e.g. two
// concentric rings) without needing contour winding direction.
func markHoles(trapezoids []FourPointFigure, pairs []TwoPointFigure) {
	spans := make([][2]float64, len(trapezoids))
	for i, tz := range trapezoids {
		lo, hi := trapezoidXSpan(tz)
		spans[i] = [2]float64{lo, hi}
	}

	for i := range trapezoids {
		nested := 0
		for j := range trapezoids {
			if i == j {
				continue
			}
			if spans[i][0] > spans[j][0] && spans[i][1] < spans[j][1] {
				nested++
			}
		}
		if nested%2 == 1 {
			trapezoids[i].InvertCoverage = true
		}
	}

	for i := range pairs {
		lo := math.Min(pairs[i].P1.X, pairs[i].P2.X)
		hi := math.Max(pairs[i].P1.X, pairs[i].P2.X)
		for _, sp := range spans {
			if lo > sp[0] && hi < sp[1] {
				pairs[i].InvertCoverage = true
				break
			}
		}
	}
}
