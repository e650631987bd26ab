// Package sfnt parses a TrueType/OpenType byte stream: the container
// directory, head/hhea/hmtx/maxp/OS2 metrics, the CMAP format-4 Unicode
// subtable, simple-glyph contours, and GPOS pair kerning (plus a legacy
// kern fallback). It does not rasterize; see package raster for that.
//
// A Font borrows the byte slice passed to Parse for its entire lifetime
// and performs no I/O of its own.
package sfnt

import "fmt"

const (
	locaFormatShort = 0
	locaFormatLong  = 1
)

// Box is the co-ordinate range of one or more glyphs, in FUnits. The
// endpoints are inclusive.
type Box struct {
	XMin, YMin, XMax, YMax int32
}

// Font holds a borrowed immutable byte view plus the metadata decoded
// from it. A *Font is read-only after Parse returns and safe to share
// across goroutines, provided callers use independent scratch buffers
// (see package raster) for rasterization.
type Font struct {
	data []byte
	tables tableIndex

	glyphCount            int
	unitsPerEm            int
	indexToLocFormat      int
	horizontalMetricCount int

	ascender    int16
	descender   int16
	lineGap     int16
	spaceAdvance uint16

	bounds Box

	cm           []cmapSegment
	cmapIndexes  []byte

	kernPairs  []kernPair // sorted legacy kern table, format 0
}

// Parse decodes the sfnt directory and required metric tables of data,
// returning a Font that borrows data for its lifetime.
func Parse(data []byte) (*Font, error) {
	tables, err := parseTableIndex(data)
	if err != nil {
		return nil, err
	}
	f := &Font{data: data, tables: tables}

	if err := f.parseHead(); err != nil {
		return nil, err
	}
	if err := f.parseMaxp(); err != nil {
		return nil, err
	}
	if err := f.parseHhea(); err != nil {
		return nil, err
	}
	if err := f.parseCmap(); err != nil {
		return nil, err
	}
	if err := f.parseOS2(); err != nil {
		return nil, err
	}
	if err := f.parseKern(); err != nil {
		return nil, err
	}
	if f.horizontalMetricCount <= 0 {
		return nil, fmt.Errorf("hhea numberOfHMetrics must be > 0: %w", ErrMissingRequiredTable)
	}
	return f, nil
}

func (f *Font) parseHead() error {
	h := f.tables.head.slice(f.data)
	if len(h) < 54 {
		return fmt.Errorf("head table too short: %w", ErrTruncatedInput)
	}
	upe, err := u16At(h, 18)
	if err != nil {
		return err
	}
	f.unitsPerEm = int(upe)

	xmin, err := i16At(h, 36)
	if err != nil {
		return err
	}
	ymin, err := i16At(h, 38)
	if err != nil {
		return err
	}
	xmax, err := i16At(h, 40)
	if err != nil {
		return err
	}
	ymax, err := i16At(h, 42)
	if err != nil {
		return err
	}
	f.bounds = Box{int32(xmin), int32(ymin), int32(xmax), int32(ymax)}

	locFmt, err := u16At(h, 50)
	if err != nil {
		return err
	}
	switch locFmt {
	case locaFormatShort:
		f.indexToLocFormat = locaFormatShort
	case locaFormatLong:
		f.indexToLocFormat = locaFormatLong
	default:
		return fmt.Errorf("bad indexToLocFormat %d: %w", locFmt, ErrTruncatedInput)
	}
	return nil
}

func (f *Font) parseMaxp() error {
	m := f.tables.maxp.slice(f.data)
	if len(m) < 6 {
		return fmt.Errorf("maxp table too short: %w", ErrTruncatedInput)
	}
	n, err := u16At(m, 4)
	if err != nil {
		return err
	}
	f.glyphCount = int(n)
	return nil
}

func (f *Font) parseHhea() error {
	h := f.tables.hhea.slice(f.data)
	if len(h) < 36 {
		return fmt.Errorf("hhea table too short: %w", ErrTruncatedInput)
	}
	asc, err := i16At(h, 4)
	if err != nil {
		return err
	}
	desc, err := i16At(h, 6)
	if err != nil {
		return err
	}
	gap, err := i16At(h, 8)
	if err != nil {
		return err
	}
	n, err := u16At(h, 34)
	if err != nil {
		return err
	}
	f.ascender = asc
	f.descender = desc
	f.lineGap = gap
	f.horizontalMetricCount = int(n)

	hmtx := f.tables.hmtx.slice(f.data)
	if 4*f.horizontalMetricCount+2*(f.glyphCount-f.horizontalMetricCount) > len(hmtx) {
		return fmt.Errorf("hmtx table too short for %d metrics: %w", f.horizontalMetricCount, ErrTruncatedInput)
	}
	return nil
}

func (f *Font) parseOS2() error {
	// OS/2 is required to be present (spec.md §4.2) but this module
	// doesn't decode any of its fields; its only use here is completing
	// the presence check already done by parseTableIndex. spaceAdvance
	// is read from hmtx via the cmap, now that cmap has been decoded.
	spaceGID := f.GlyphIndex(' ')
	f.spaceAdvance = f.HorizontalMetric(spaceGID).AdvanceWidth
	return nil
}

// SpaceAdvance returns the space glyph's horizontal advance, in FUnits.
func (f *Font) SpaceAdvance() uint16 { return f.spaceAdvance }

// UnitsPerEm returns the number of FUnits in the font's em-square.
func (f *Font) UnitsPerEm() int { return f.unitsPerEm }

// GlyphCount returns the number of glyphs in the font.
func (f *Font) GlyphCount() int { return f.glyphCount }

// Ascender returns the typographic ascender, in FUnits.
func (f *Font) Ascender() int16 { return f.ascender }

// Descender returns the typographic descender, in FUnits (typically negative).
func (f *Font) Descender() int16 { return f.descender }

// LineGap returns the recommended line gap, in FUnits.
func (f *Font) LineGap() int16 { return f.lineGap }

// Bounds returns the union of the font's glyphs' bounding boxes, in FUnits.
func (f *Font) Bounds() Box { return f.bounds }

// GlyphBoundingBox returns the bounding box of a single glyph, in FUnits.
func (f *Font) GlyphBoundingBox(gid uint32) (Box, error) {
	if int(gid) >= f.glyphCount {
		return Box{}, fmt.Errorf("glyph %d >= glyph count %d: %w", gid, f.glyphCount, ErrInvalidGlyphIndex)
	}
	g0, g1, err := f.locaRange(gid)
	if err != nil {
		return Box{}, err
	}
	if g0 == g1 {
		return Box{}, fmt.Errorf("glyph %d: %w", gid, ErrGlyphHasNoOutline)
	}
	glyf := f.tables.glyf.slice(f.data)
	xmin, err := i16At(glyf, int(g0)+2)
	if err != nil {
		return Box{}, err
	}
	ymin, err := i16At(glyf, int(g0)+4)
	if err != nil {
		return Box{}, err
	}
	xmax, err := i16At(glyf, int(g0)+6)
	if err != nil {
		return Box{}, err
	}
	ymax, err := i16At(glyf, int(g0)+8)
	if err != nil {
		return Box{}, err
	}
	return Box{int32(xmin), int32(ymin), int32(xmax), int32(ymax)}, nil
}
