// Package ttfcore ties package sfnt's font parsing to package raster's
// analytic scanline rasterizer behind the single operation surface a
// text layout caller needs: glyph lookup, metrics, kerning, and
// rasterization into a caller-owned pixel buffer.
package ttfcore

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/glyphkit/ttfcore/raster"
	"github.com/glyphkit/ttfcore/sfnt"
)

// Font wraps a parsed sfnt.Font with the rasterization operation that
// needs both packages.
type Font struct {
	sfnt *sfnt.Font
}

// Parse decodes a TTF/OTF byte buffer. The returned Font borrows data for
// its entire lifetime.
func Parse(data []byte) (*Font, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Font{sfnt: f}, nil
}

// GlyphIndex returns the glyph id for codepoint, or 0 if it isn't in the
// font's cmap.
func (f *Font) GlyphIndex(codepoint rune) uint32 { return f.sfnt.GlyphIndex(codepoint) }

// GlyphBoundingBox returns a glyph's FUnit bounding box.
func (f *Font) GlyphBoundingBox(gid uint32) (sfnt.Box, error) { return f.sfnt.GlyphBoundingBox(gid) }

// AdvanceWidth returns a glyph's horizontal advance, in FUnits.
func (f *Font) AdvanceWidth(gid uint32) uint16 { return f.sfnt.HorizontalMetric(gid).AdvanceWidth }

// LeftSideBearing returns a glyph's left side bearing, in FUnits.
func (f *Font) LeftSideBearing(gid uint32) int16 {
	return f.sfnt.HorizontalMetric(gid).LeftSideBearing
}

// KernPairAdvance returns the signed FUnit x-advance adjustment for the
// glyph pair (left, right), or ok=false if neither GPOS nor a legacy kern
// table has an entry for the pair.
func (f *Font) KernPairAdvance(left, right rune) (advance int16, ok bool, err error) {
	return f.sfnt.KernPairAdvance(left, right)
}

// ScaleForPixelHeight returns the FUnit-to-pixel scale that makes the
// font's ascender-to-descender span equal desiredPx.
func (f *Font) ScaleForPixelHeight(desiredPx float32) float32 {
	return f.sfnt.ScaleForPixelHeight(desiredPx)
}

// FUnitToPixelScale returns the scale from FUnits to pixels for a given
// point size and output resolution.
func FUnitToPixelScale(pointSize, ppi float64, unitsPerEm int) float64 {
	return sfnt.FUnitToPixelScale(pointSize, ppi, unitsPerEm)
}

// Name returns a decoded name-table string (e.g. 1 for Family, 4 for Full
// name), or ok=false if the font has no matching record.
func (f *Font) Name(nameID uint16) (value string, ok bool) { return f.sfnt.Name(nameID) }

// pixelBounds computes the pixel-space bounding box of gid at scale,
// matching sfnt.Font.RequiredDimensions' fixed-point floor/ceil rounding
// so a caller sizing a buffer with RequiredDimensions gets a box that
// exactly matches what RasterizeGlyph paints into.
func pixelBounds(box sfnt.Box, scale float64) raster.Bounds {
	x0 := fixed.Int26_6(math.Round(float64(box.XMin) * scale * 64)).Floor()
	x1 := fixed.Int26_6(math.Round(float64(box.XMax) * scale * 64)).Ceil()
	y0 := fixed.Int26_6(math.Round(float64(box.YMin) * scale * 64)).Floor()
	y1 := fixed.Int26_6(math.Round(float64(box.YMax) * scale * 64)).Ceil()
	return raster.Bounds{MinX: 0, MinY: 0, MaxX: x1 - x0, MaxY: y1 - y0}
}

// RasterizeGlyph rasterizes the glyph for codepoint at the given
// FUnit-to-pixel scale into w, with the pixel origin at the glyph's
// bounding box top-left. The caller is responsible for sizing w to
// RequiredDimensions(gid, scale) beforehand.
func (f *Font) RasterizeGlyph(scale float64, codepoint rune, w raster.PixelWriter) error {
	gid := f.sfnt.GlyphIndex(codepoint)
	glyph, err := f.sfnt.LoadGlyph(gid)
	if err != nil {
		return fmt.Errorf("rasterize %q: %w", codepoint, err)
	}

	box, err := f.sfnt.GlyphBoundingBox(gid)
	if err != nil {
		return fmt.Errorf("rasterize %q: %w", codepoint, err)
	}
	bounds := pixelBounds(box, scale)
	x0 := fixed.Int26_6(math.Round(float64(box.XMin) * scale * 64)).Floor()
	y1 := fixed.Int26_6(math.Round(float64(box.YMax) * scale * 64)).Ceil()

	builder := raster.OutlineBuilder{
		Scale: scale,
		XLeft: float64(x0),
		YTop:  float64(y1),
	}
	vertices := glyphVertices(glyph)
	outlines, err := builder.Build(vertices)
	if err != nil {
		return fmt.Errorf("rasterize %q: %w", codepoint, err)
	}

	r := raster.CoverageRasterizer{
		Outlines: outlines,
		Bounds:   bounds,
	}
	if err := r.Rasterize(w); err != nil {
		return fmt.Errorf("rasterize %q: %w", codepoint, err)
	}
	return nil
}

// RequiredDimensions returns the integer pixel width and height needed to
// rasterize gid at the given scale.
func (f *Font) RequiredDimensions(gid uint32, scale float64) (w, h int32, err error) {
	return f.sfnt.RequiredDimensions(gid, scale)
}
