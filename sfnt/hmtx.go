package sfnt

// HorizontalMetric is a glyph's horizontal advance and left side bearing,
// decoded lazily from hmtx.
type HorizontalMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// HorizontalMetric returns the horizontal metrics for the glyph with the
// given index, clamping to the last explicit entry for glyphs beyond
// horizontalMetricCount (spec.md §3).
func (f *Font) HorizontalMetric(gid uint32) HorizontalMetric {
	hmtx := f.tables.hmtx.slice(f.data)
	j := int(gid)
	if j >= f.horizontalMetricCount {
		j = f.horizontalMetricCount - 1
	}
	aw, err := u16At(hmtx, 4*j)
	if err != nil {
		return HorizontalMetric{}
	}
	if int(gid) >= f.horizontalMetricCount {
		// Beyond the explicit entries: advance width is shared, but
		// left side bearing continues as its own array of int16.
		p := 4*f.horizontalMetricCount + 2*(int(gid)-f.horizontalMetricCount)
		lsb, err := i16At(hmtx, p)
		if err != nil {
			return HorizontalMetric{AdvanceWidth: aw}
		}
		return HorizontalMetric{AdvanceWidth: aw, LeftSideBearing: lsb}
	}
	lsb, err := i16At(hmtx, 4*j+2)
	if err != nil {
		return HorizontalMetric{AdvanceWidth: aw}
	}
	return HorizontalMetric{AdvanceWidth: aw, LeftSideBearing: lsb}
}

// AdvanceWidth returns the glyph's horizontal advance, in FUnits.
func (f *Font) AdvanceWidth(gid uint32) uint16 {
	return f.HorizontalMetric(gid).AdvanceWidth
}

// LeftSideBearing returns the glyph's left side bearing, in FUnits.
func (f *Font) LeftSideBearing(gid uint32) int16 {
	return f.HorizontalMetric(gid).LeftSideBearing
}
