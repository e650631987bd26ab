package sfnt

import "fmt"

// locaRange returns the [start, end) byte range of glyph gid within glyf,
// translating loca's short (u16, half-offset) or long (u32) encoding per
// the font's indexToLocFormat.
func (f *Font) locaRange(gid uint32) (start, end uint32, err error) {
	loca := f.tables.loca.slice(f.data)
	i := int(gid)
	if f.indexToLocFormat == locaFormatShort {
		g0, err := u16At(loca, 2*i)
		if err != nil {
			return 0, 0, err
		}
		g1, err := u16At(loca, 2*i+2)
		if err != nil {
			return 0, 0, err
		}
		return 2 * uint32(g0), 2 * uint32(g1), nil
	}
	g0, err := u32At(loca, 4*i)
	if err != nil {
		return 0, 0, err
	}
	g1, err := u32At(loca, 4*i+4)
	if err != nil {
		return 0, 0, err
	}
	return g0, g1, nil
}

// glyfRange returns the byte range of glyph gid's data within glyf,
// failing with ErrGlyphHasNoOutline for an empty glyph (e.g. space).
func (f *Font) glyfRange(gid uint32) ([]byte, error) {
	if int(gid) >= f.glyphCount {
		return nil, fmt.Errorf("glyph %d >= glyph count %d: %w", gid, f.glyphCount, ErrInvalidGlyphIndex)
	}
	g0, g1, err := f.locaRange(gid)
	if err != nil {
		return nil, err
	}
	if g0 == g1 {
		return nil, fmt.Errorf("glyph %d: %w", gid, ErrGlyphHasNoOutline)
	}
	glyf := f.tables.glyf.slice(f.data)
	if int(g1) > len(glyf) {
		return nil, fmt.Errorf("glyph %d range: %w", gid, ErrTruncatedInput)
	}
	return glyf[g0:g1], nil
}
