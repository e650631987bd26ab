package sfnt

import "fmt"

const gposValueFormatXAdvanceOnly = 0x0004

// gposPairLookup is the resolved GPOS lookup used for pair kerning: the
// byte offset (absolute, within the GPOS table) of each pair-adjustment
// subtable belonging to the first lookup of type 2 found in the lookup
// list, per the simplification spec.md §4.7 explicitly allows ("a
// minimal implementation may skip feature filtering").
type gposPairLookup struct {
	gpos      []byte
	subtables []int
}

// ensureGPOS parses the GPOS header and locates the first pair-adjustment
// (type 2) lookup. The result is not cached on f, so a *Font stays
// read-only after Parse. Returns (nil, nil) if GPOS isn't present in the
// font.
func (f *Font) ensureGPOS() (*gposPairLookup, error) {
	if !f.tables.gpos.present() || f.tables.gpos.length == 0 {
		return nil, nil
	}
	gpos := f.tables.gpos.slice(f.data)
	if len(gpos) < 10 {
		return nil, fmt.Errorf("GPOS table too short: %w", ErrTruncatedInput)
	}
	major, err := u16At(gpos, 0)
	if err != nil {
		return nil, err
	}
	minor, err := u16At(gpos, 2)
	if err != nil {
		return nil, err
	}
	if major != 1 {
		return nil, fmt.Errorf("GPOS major version %d: %w", major, ErrUnsupportedValueFormat)
	}
	scriptListOff, err := u16At(gpos, 4)
	if err != nil {
		return nil, err
	}
	lookupListOff, err := u16At(gpos, 8)
	if err != nil {
		return nil, err
	}
	_ = minor // featureVariations offset (minor==1) is not needed for lookup discovery

	if err := requireDefaultScript(gpos, int(scriptListOff)); err != nil {
		return nil, err
	}

	subtables, err := firstPairAdjustmentLookup(gpos, int(lookupListOff))
	if err != nil {
		return nil, err
	}

	return &gposPairLookup{gpos: gpos, subtables: subtables}, nil
}

// requireDefaultScript fails with ErrNoDefaultLang unless the script list
// has a "DFLT" entry, per spec.md §4.7 step 2.
func requireDefaultScript(gpos []byte, scriptListOff int) error {
	count, err := u16At(gpos, scriptListOff)
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		rec := scriptListOff + 2 + 6*i
		tag, err := u32At(gpos, rec)
		if err != nil {
			return err
		}
		if tag == 0x44464c54 { // "DFLT"
			return nil
		}
	}
	return fmt.Errorf("GPOS script list: %w", ErrNoDefaultLang)
}

// firstPairAdjustmentLookup returns the absolute (within gpos) subtable
// offsets of the first lookup whose type is 2 (pair adjustment).
func firstPairAdjustmentLookup(gpos []byte, lookupListOff int) ([]int, error) {
	count, err := u16At(gpos, lookupListOff)
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(count); i++ {
		lookupOffRel, err := u16At(gpos, lookupListOff+2+2*i)
		if err != nil {
			return nil, err
		}
		lookupOff := lookupListOff + int(lookupOffRel)
		lookupType, err := u16At(gpos, lookupOff)
		if err != nil {
			return nil, err
		}
		if lookupType != 2 {
			continue
		}
		subtableCount, err := u16At(gpos, lookupOff+4)
		if err != nil {
			return nil, err
		}
		offs := make([]int, subtableCount)
		for j := 0; j < int(subtableCount); j++ {
			subOffRel, err := u16At(gpos, lookupOff+6+2*j)
			if err != nil {
				return nil, err
			}
			offs[j] = lookupOff + int(subOffRel)
		}
		return offs, nil
	}
	return nil, nil
}

// KernPairAdvance returns the signed x-advance adjustment for the glyph
// pair (left, right), trying GPOS pair adjustment first and falling back
// to the legacy kern table (spec.md's additive feature, see
// SPEC_FULL.md §4). ok is false when no kerning data applies to the pair.
func (f *Font) KernPairAdvance(left, right rune) (advance int16, ok bool, err error) {
	leftGID := f.GlyphIndex(left)
	rightGID := f.GlyphIndex(right)

	lk, err := f.ensureGPOS()
	if err != nil {
		return 0, false, err
	}
	if lk != nil {
		for _, subOff := range lk.subtables {
			adv, matched, err := pairAdjustment(lk.gpos, subOff, uint16(leftGID), uint16(rightGID))
			if err != nil {
				return 0, false, err
			}
			if matched {
				if adv != 0 {
					return adv, true, nil
				}
				// Spec: "return first non-zero hit or None" — a matched
				// but zero-valued record is not reported as a hit.
				return 0, false, nil
			}
		}
	}

	if adv, ok := f.legacyKern(uint16(leftGID), uint16(rightGID)); ok {
		return adv, true, nil
	}
	return 0, false, nil
}

// pairAdjustment evaluates one pair-adjustment subtable (format 1 or 2)
// for the (left, right) pair. matched is true once the subtable's
// coverage/class tables determine this pair is in scope, even if the
// resulting advance happens to be zero.
func pairAdjustment(gpos []byte, subOff int, left, right uint16) (advance int16, matched bool, err error) {
	posFormat, err := u16At(gpos, subOff)
	if err != nil {
		return 0, false, err
	}
	coverageOffRel, err := u16At(gpos, subOff+2)
	if err != nil {
		return 0, false, err
	}
	coverageOff := subOff + int(coverageOffRel)

	switch posFormat {
	case 1:
		return pairAdjustmentFormat1(gpos, subOff, coverageOff, left, right)
	case 2:
		return pairAdjustmentFormat2(gpos, subOff, coverageOff, left, right)
	default:
		return 0, false, fmt.Errorf("GPOS pos format %d: %w", posFormat, ErrUnsupportedValueFormat)
	}
}

func pairAdjustmentFormat1(gpos []byte, subOff, coverageOff int, left, right uint16) (int16, bool, error) {
	valueFormat1, err := u16At(gpos, subOff+4)
	if err != nil {
		return 0, false, err
	}
	valueFormat2, err := u16At(gpos, subOff+6)
	if err != nil {
		return 0, false, err
	}
	if valueFormat1 != gposValueFormatXAdvanceOnly || valueFormat2 != 0 {
		return 0, false, fmt.Errorf("GPOS pair value formats %#x/%#x: %w", valueFormat1, valueFormat2, ErrUnsupportedValueFormat)
	}

	idx, found, err := coverageIndex(gpos, coverageOff, left)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, nil
	}

	pairSetCount, err := u16At(gpos, subOff+8)
	if err != nil {
		return 0, false, err
	}
	if idx >= int(pairSetCount) {
		return 0, false, fmt.Errorf("GPOS coverage index %d >= pairSetCount %d: %w", idx, pairSetCount, ErrUnsupportedValueFormat)
	}
	pairSetOffRel, err := u16At(gpos, subOff+10+2*idx)
	if err != nil {
		return 0, false, err
	}
	pairSetOff := subOff + int(pairSetOffRel)

	pairValueCount, err := u16At(gpos, pairSetOff)
	if err != nil {
		return 0, false, err
	}
	recSize := 2 + 2 // secondGlyph + one int16 x_advance
	for i := 0; i < int(pairValueCount); i++ {
		recOff := pairSetOff + 2 + i*recSize
		secondGlyph, err := u16At(gpos, recOff)
		if err != nil {
			return 0, false, err
		}
		if secondGlyph != right {
			continue
		}
		adv, err := i16At(gpos, recOff+2)
		if err != nil {
			return 0, false, err
		}
		return adv, true, nil
	}
	return 0, false, nil
}

func pairAdjustmentFormat2(gpos []byte, subOff, coverageOff int, left, right uint16) (int16, bool, error) {
	valueFormat1, err := u16At(gpos, subOff+4)
	if err != nil {
		return 0, false, err
	}
	valueFormat2, err := u16At(gpos, subOff+6)
	if err != nil {
		return 0, false, err
	}
	if valueFormat1 != gposValueFormatXAdvanceOnly || valueFormat2 != 0 {
		return 0, false, fmt.Errorf("GPOS pair value formats %#x/%#x: %w", valueFormat1, valueFormat2, ErrUnsupportedValueFormat)
	}

	if _, found, err := coverageIndex(gpos, coverageOff, left); err != nil {
		return 0, false, err
	} else if !found {
		return 0, false, nil
	}

	classDef1OffRel, err := u16At(gpos, subOff+8)
	if err != nil {
		return 0, false, err
	}
	classDef2OffRel, err := u16At(gpos, subOff+10)
	if err != nil {
		return 0, false, err
	}
	classCount1, err := u16At(gpos, subOff+12)
	if err != nil {
		return 0, false, err
	}
	classCount2, err := u16At(gpos, subOff+14)
	if err != nil {
		return 0, false, err
	}

	class1, err := classOf(gpos, subOff+int(classDef1OffRel), left)
	if err != nil {
		return 0, false, err
	}
	class2, err := classOf(gpos, subOff+int(classDef2OffRel), right)
	if err != nil {
		return 0, false, err
	}
	if int(class1) >= int(classCount1) || int(class2) >= int(classCount2) {
		return 0, false, fmt.Errorf("GPOS classes %d/%d outside class counts %d/%d: %w", class1, class2, classCount1, classCount2, ErrUnsupportedValueFormat)
	}

	matrixIndex := int(class2) + int(class1)*int(classCount2)
	recOff := subOff + 16 + matrixIndex*2
	adv, err := i16At(gpos, recOff)
	if err != nil {
		return 0, false, err
	}
	return adv, true, nil
}

// coverageIndex computes the coverage index of glyph within the coverage
// table at coverageOff, supporting formats 1 (glyph array) and 2 (range
// records). The range-record index is computed per the OpenType
// specification (startCoverageIndex + (glyph - startGlyphID)); spec.md
// §9 flags this as a place the original source may have an off-by-one,
// so this implementation is verified against the spec rather than
// copied.
func coverageIndex(data []byte, coverageOff int, gid uint16) (index int, found bool, err error) {
	format, err := u16At(data, coverageOff)
	if err != nil {
		return 0, false, err
	}
	switch format {
	case 1:
		count, err := u16At(data, coverageOff+2)
		if err != nil {
			return 0, false, err
		}
		for i := 0; i < int(count); i++ {
			g, err := u16At(data, coverageOff+4+2*i)
			if err != nil {
				return 0, false, err
			}
			if g == gid {
				return i, true, nil
			}
		}
		return 0, false, nil
	case 2:
		count, err := u16At(data, coverageOff+2)
		if err != nil {
			return 0, false, err
		}
		for i := 0; i < int(count); i++ {
			recOff := coverageOff + 4 + 6*i
			start, err := u16At(data, recOff)
			if err != nil {
				return 0, false, err
			}
			end, err := u16At(data, recOff+2)
			if err != nil {
				return 0, false, err
			}
			startCoverageIndex, err := u16At(data, recOff+4)
			if err != nil {
				return 0, false, err
			}
			if gid >= start && gid <= end {
				return int(startCoverageIndex) + int(gid-start), true, nil
			}
		}
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("coverage format %d: %w", format, ErrUnsupportedValueFormat)
	}
}

// classOf computes the class of glyph under the class-def table at
// classDefOff, supporting formats 1 (contiguous array) and 2 (ranges).
// Glyphs not covered by either format default to class 0.
func classOf(data []byte, classDefOff int, gid uint16) (uint16, error) {
	format, err := u16At(data, classDefOff)
	if err != nil {
		return 0, err
	}
	switch format {
	case 1:
		startGlyph, err := u16At(data, classDefOff+2)
		if err != nil {
			return 0, err
		}
		count, err := u16At(data, classDefOff+4)
		if err != nil {
			return 0, err
		}
		if gid < startGlyph || int(gid-startGlyph) >= int(count) {
			return 0, nil
		}
		return u16At(data, classDefOff+6+2*int(gid-startGlyph))
	case 2:
		count, err := u16At(data, classDefOff+2)
		if err != nil {
			return 0, err
		}
		for i := 0; i < int(count); i++ {
			recOff := classDefOff + 4 + 6*i
			start, err := u16At(data, recOff)
			if err != nil {
				return 0, err
			}
			end, err := u16At(data, recOff+2)
			if err != nil {
				return 0, err
			}
			if gid >= start && gid <= end {
				return u16At(data, recOff+4)
			}
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("classDef format %d: %w", format, ErrUnsupportedValueFormat)
	}
}
