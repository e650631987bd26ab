package sfnt

import "fmt"

// tableRange is a table's (offset, length) within the font's byte view.
type tableRange struct {
	offset, length int
}

// slice returns the table's bytes, aliasing data.
func (t tableRange) slice(data []byte) []byte {
	return data[t.offset : t.offset+t.length]
}

func (t tableRange) present() bool {
	return t.length > 0 || t.offset != 0
}

// tableIndex is the directory map: tag -> (offset, length), for every
// table this module cares about. Tag matching is case-sensitive ASCII,
// as required by spec.
type tableIndex struct {
	cmap, loca, head, glyf, hhea, hmtx, kern, gpos, maxp, name, os2 tableRange
	hasGlyf, hasLoca                                                bool
}

// parseTableIndex reads the sfnt container header and directory. It
// records the (offset, length) of every table this module decodes, and
// fails fast on the fatal-missing-table rules from spec.md §4.2.
func parseTableIndex(data []byte) (tableIndex, error) {
	var idx tableIndex

	r := newReader(data)
	if _, err := r.readU32(); err != nil { // scaler type
		return idx, err
	}
	numTables, err := r.readU16()
	if err != nil {
		return idx, err
	}
	// searchRange, entrySelector, rangeShift
	if err := r.skip(6); err != nil {
		return idx, err
	}

	for i := 0; i < int(numTables); i++ {
		tagBytes, err := r.readBytes(4)
		if err != nil {
			return idx, err
		}
		if _, err := r.readU32(); err != nil { // checksum
			return idx, err
		}
		offset, err := r.readU32()
		if err != nil {
			return idx, err
		}
		length, err := r.readU32()
		if err != nil {
			return idx, err
		}
		tr := tableRange{offset: int(offset), length: int(length)}
		if tr.offset < 0 || tr.length < 0 || tr.offset+tr.length > len(data) {
			return idx, fmt.Errorf("table %q out of range: %w", tagBytes, ErrTruncatedInput)
		}

		switch string(tagBytes) {
		case "cmap":
			idx.cmap = tr
		case "loca":
			idx.loca = tr
			idx.hasLoca = true
		case "head":
			idx.head = tr
		case "glyf":
			idx.glyf = tr
			idx.hasGlyf = true
		case "hhea":
			idx.hhea = tr
		case "hmtx":
			idx.hmtx = tr
		case "kern":
			idx.kern = tr
		case "GPOS":
			idx.gpos = tr
		case "maxp":
			idx.maxp = tr
		case "name":
			idx.name = tr
		case "OS/2":
			idx.os2 = tr
		}
	}

	if idx.os2.length == 0 {
		return idx, fmt.Errorf("OS/2: %w", ErrMissingRequiredTable)
	}
	if idx.hmtx.length == 0 {
		return idx, fmt.Errorf("hmtx: %w", ErrMissingRequiredTable)
	}
	if idx.hasGlyf && !idx.hasLoca {
		return idx, fmt.Errorf("loca (required by glyf): %w", ErrMissingRequiredTable)
	}
	if !idx.hasGlyf {
		return idx, fmt.Errorf("glyf: %w", ErrMissingRequiredTable)
	}
	if idx.head.length == 0 {
		return idx, fmt.Errorf("head: %w", ErrMissingRequiredTable)
	}
	if idx.hhea.length == 0 {
		return idx, fmt.Errorf("hhea: %w", ErrMissingRequiredTable)
	}
	if idx.maxp.length == 0 {
		return idx, fmt.Errorf("maxp: %w", ErrMissingRequiredTable)
	}
	return idx, nil
}
