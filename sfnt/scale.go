package sfnt

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// ScaleForPixelHeight returns the FUnit-to-pixel scale that makes the
// font's ascender-to-descender span equal desiredPx, per spec.md §4.11.
func (f *Font) ScaleForPixelHeight(desiredPx float32) float32 {
	span := float64(f.ascender) + float64(-f.descender)
	if span <= 0 {
		return 0
	}
	return float32(float64(desiredPx) / span)
}

// FUnitToPixelScale returns the scale from FUnits to pixels for a given
// point size and output resolution, per spec.md §4.11.
func FUnitToPixelScale(pointSize, ppi float64, unitsPerEm int) float64 {
	if unitsPerEm <= 0 {
		return 0
	}
	return (pointSize * ppi) / (72 * float64(unitsPerEm))
}

// RequiredDimensions returns the integer pixel width and height needed to
// rasterize gid at the given FUnit-to-pixel scale, computed with
// fixed-point floor/ceil arithmetic to avoid float round-trip error at
// the pixel boundary (spec.md §4.11; technique grounded on the teacher's
// truetype/face.go NewFace/rasterize bounds computation).
func (f *Font) RequiredDimensions(gid uint32, scale float64) (w, h int32, err error) {
	box, err := f.GlyphBoundingBox(gid)
	if err != nil {
		return 0, 0, err
	}
	x0 := toFixed(float64(box.XMin) * scale).Floor()
	x1 := toFixed(float64(box.XMax) * scale).Ceil()
	y0 := toFixed(float64(box.YMin) * scale).Floor()
	y1 := toFixed(float64(box.YMax) * scale).Ceil()
	return int32(x1 - x0), int32(y1 - y0), nil
}

// toFixed converts a pixel-space float64 to 26.6 fixed point, rounding
// to the nearest 1/64th pixel.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
