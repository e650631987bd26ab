package sfnt

import "fmt"

const (
	platformUnicode   = 0
	platformMicrosoft = 3
)

// cmapSegment is one entry of a decoded format-4 segment array.
type cmapSegment struct {
	start, end, delta, idRangeOffset uint16
}

// parseCmap locates the first Unicode-platform subtable in cmap, requires
// it to be format 4, and decodes its segment arrays into f.cm.
func (f *Font) parseCmap() error {
	cmap := f.tables.cmap.slice(f.data)
	if len(cmap) < 4 {
		return fmt.Errorf("cmap table too short: %w", ErrTruncatedInput)
	}
	numSubtables, err := u16At(cmap, 2)
	if err != nil {
		return err
	}
	if len(cmap) < 4+8*int(numSubtables) {
		return fmt.Errorf("cmap subtable records truncated: %w", ErrTruncatedInput)
	}

	offset := -1
	for i := 0; i < int(numSubtables); i++ {
		rec := 4 + 8*i
		platformID, err := u16At(cmap, rec)
		if err != nil {
			return err
		}
		if platformID != platformUnicode {
			continue
		}
		o, err := u32At(cmap, rec+4)
		if err != nil {
			return err
		}
		offset = int(o)
		break
	}
	if offset < 0 {
		return fmt.Errorf("no Unicode platform cmap subtable: %w", ErrUnsupportedCmapFormat)
	}
	if offset <= 0 || offset > len(cmap) {
		return fmt.Errorf("bad cmap subtable offset %d: %w", offset, ErrTruncatedInput)
	}

	format, err := u16At(cmap, offset)
	if err != nil {
		return err
	}
	if format != 4 {
		return fmt.Errorf("cmap format %d: %w", format, ErrUnsupportedCmapFormat)
	}

	segCountX2, err := u16At(cmap, offset+6)
	if err != nil {
		return err
	}
	segCount := int(segCountX2 / 2)

	endBase := offset + 14
	startBase := endBase + int(segCountX2) + 2 // skip reservedPad
	deltaBase := startBase + int(segCountX2)
	rangeBase := deltaBase + int(segCountX2)

	segs := make([]cmapSegment, segCount)
	for i := 0; i < segCount; i++ {
		end, err := u16At(cmap, endBase+2*i)
		if err != nil {
			return err
		}
		start, err := u16At(cmap, startBase+2*i)
		if err != nil {
			return err
		}
		delta, err := u16At(cmap, deltaBase+2*i)
		if err != nil {
			return err
		}
		rangeOff, err := u16At(cmap, rangeBase+2*i)
		if err != nil {
			return err
		}
		segs[i] = cmapSegment{start: start, end: end, delta: delta, idRangeOffset: rangeOff}
	}

	f.cm = segs
	f.cmapIndexes = cmap[rangeBase:]
	return nil
}

// GlyphIndex maps a codepoint to a glyph index, implementing the
// format-4 binary search described in spec.md §4.3. It returns 0 (the
// missing-glyph index) for codepoints outside the cmap's Unicode BMP
// subset, rather than an error.
func (f *Font) GlyphIndex(codepoint rune) uint32 {
	if codepoint < 0 || codepoint > 0xFFFF {
		return 0
	}
	c := uint16(codepoint)

	lo, hi := 0, len(f.cm)
	for lo < hi {
		mid := (lo + hi) / 2
		if f.cm[mid].end < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == len(f.cm) {
		return 0
	}
	seg := f.cm[lo]
	if c < seg.start {
		return 0
	}
	if seg.idRangeOffset == 0 {
		return uint32(uint16(c + seg.delta))
	}
	// idRangeOffset is a byte offset measured from its own slot in the
	// idRangeOffset array, not from glyphIdArray's start. f.cmapIndexes
	// aliases cmap starting at that array's first byte, so slot lo sits
	// at byte 2*lo within it.
	byteOffset := 2*lo + int(seg.idRangeOffset) + 2*int(c-seg.start)
	gid, err := u16At(f.cmapIndexes, byteOffset)
	if err != nil || gid == 0 {
		return 0
	}
	return uint32(uint16(gid + seg.delta))
}
