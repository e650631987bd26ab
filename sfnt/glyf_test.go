package sfnt

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildSimpleGlyf constructs a single-contour, 4-point simple glyph whose
// flag byte stream exercises the REPEAT bit: one flag byte followed by a
// repeat count of 3, covering all 4 points with the same on-curve, short
// positive x/y vector flags.
func buildSimpleGlyf() (glyf, loca []byte) {
	var g []byte
	put16 := func(v uint16) { g = binary.BigEndian.AppendUint16(g, v) }
	puti16 := func(v int16) { g = binary.BigEndian.AppendUint16(g, uint16(v)) }
	put8 := func(v uint8) { g = append(g, v) }

	puti16(1)  // numberOfContours
	puti16(0)  // xMin
	puti16(0)  // yMin
	puti16(40) // xMax
	puti16(10) // yMax
	put16(3)   // endPtsOfContours[0]: last point index
	put16(0)   // instructionLength

	const flag = flagOnCurve | flagXShortVector | flagPositiveXShortVector |
		flagYShortVector | flagPositiveYShortVector
	put8(flag | flagRepeat)
	put8(3) // 3 additional points share `flag`

	// x deltas: 10,10,10,10 -> cumulative 10,20,30,40
	put8(10)
	put8(10)
	put8(10)
	put8(10)
	// y deltas: 0,10,0,0 -> cumulative 0,10,10,10
	put8(0)
	put8(10)
	put8(0)
	put8(0)

	loca = binary.BigEndian.AppendUint16(loca, 0)
	loca = binary.BigEndian.AppendUint16(loca, uint16(len(g)/2))
	return g, loca
}

func TestLoadGlyphFlagRepeat(t *testing.T) {
	glyf, loca := buildSimpleGlyf()
	data := append(append([]byte{}, loca...), glyf...)

	f := &Font{
		data:             data,
		glyphCount:       1,
		indexToLocFormat: locaFormatShort,
		tables: tableIndex{
			loca: tableRange{offset: 0, length: len(loca)},
			glyf: tableRange{offset: len(loca), length: len(glyf)},
		},
	}

	g, err := f.LoadGlyph(0)
	if err != nil {
		t.Fatalf("LoadGlyph: %v", err)
	}
	if len(g.Points) != 4 {
		t.Fatalf("len(Points) = %d, want 4", len(g.Points))
	}
	if len(g.End) != 1 || g.End[0] != 4 {
		t.Errorf("End = %v, want [4]", g.End)
	}

	wantX := []float64{10, 20, 30, 40}
	wantY := []float64{0, 10, 10, 10}
	for i, p := range g.Points {
		if !p.OnCurve {
			t.Errorf("point %d: OnCurve = false, want true (flagRepeat carried the on-curve bit)", i)
		}
		if p.X != wantX[i] || p.Y != wantY[i] {
			t.Errorf("point %d = (%v,%v), want (%v,%v)", i, p.X, p.Y, wantX[i], wantY[i])
		}
	}
}

func TestLoadGlyphComposite(t *testing.T) {
	var glyf []byte
	glyf = binary.BigEndian.AppendUint16(glyf, 0xFFFF) // numberOfContours = -1 (< 0)
	glyf = append(glyf, 0, 0, 0, 0, 0, 0, 0, 0)                   // bbox, unused by this check

	loca := binary.BigEndian.AppendUint16(nil, 0)
	loca = binary.BigEndian.AppendUint16(loca, uint16(len(glyf)/2))
	data := append(append([]byte{}, loca...), glyf...)

	f := &Font{
		data:             data,
		glyphCount:       1,
		indexToLocFormat: locaFormatShort,
		tables: tableIndex{
			loca: tableRange{offset: 0, length: len(loca)},
			glyf: tableRange{offset: len(loca), length: len(glyf)},
		},
	}

	if _, err := f.LoadGlyph(0); !errors.Is(err, ErrCompositeUnsupported) {
		t.Errorf("LoadGlyph on a composite glyph: got %v, want ErrCompositeUnsupported", err)
	}
}
