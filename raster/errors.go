// Package raster implements an analytic scanline rasterizer over a
// flattened set of line and quadratic Bezier segments. It has no
// knowledge of font formats or glyph containers; callers (see package
// ttfcore) are responsible for turning glyph outlines into Outline
// values.
package raster

import "errors"

var (
	// ErrComplexityExceeded is returned when a single scanline produces
	// more intersections, pair figures, or connections than the
	// rasterizer's fixed-size scratch buffers can hold. Rather than
	// silently truncating coverage, the rasterizer reports the failure
	// so the caller can decide how to degrade (skip the glyph, fall back
	// to a bounding box, etc).
	ErrComplexityExceeded = errors.New("raster: scanline complexity exceeded fixed buffer capacity")

	// ErrOddIntersectionCount is returned when a scanline produces an
	// odd number of edge intersections, which would make pairing into
	// inside/outside spans ambiguous. This indicates a malformed or
	// non-watertight outline.
	ErrOddIntersectionCount = errors.New("raster: scanline produced an odd intersection count")

	// ErrEmptyOutline is returned when CoverageRasterizer is asked to
	// rasterize with no Outlines at all. An individual Outline with zero
	// segments is skipped rather than reported.
	ErrEmptyOutline = errors.New("raster: outline has no segments")
)
