package sfnt

import "fmt"

// Point is a co-ordinate pair plus whether it is "on" a contour, in
// FUnits, before scaling.
type Point struct {
	X, Y    float64
	OnCurve bool
}

// Glyph is a simple glyph's decoded contours: Points holds every point of
// every contour back to back, and End holds the index (exclusive) one
// past the end of each contour, mirroring the teacher's GlyphBuf layout.
type Glyph struct {
	Bounds Box
	Points []Point
	End    []int
}

const (
	flagOnCurve              = 1 << 0
	flagXShortVector         = 1 << 1
	flagYShortVector         = 1 << 2
	flagRepeat               = 1 << 3
	flagPositiveXShortVector = 1 << 4
	flagPositiveYShortVector = 1 << 5

	flagThisXIsSame = flagPositiveXShortVector
	flagThisYIsSame = flagPositiveYShortVector
)

// LoadGlyph decodes the simple-glyph contours of gid. Composite glyphs
// (contourCount < 0) are a Non-goal and fail with ErrCompositeUnsupported.
func (f *Font) LoadGlyph(gid uint32) (*Glyph, error) {
	glyf, err := f.glyfRange(gid)
	if err != nil {
		return nil, err
	}

	contourCount, err := i16At(glyf, 0)
	if err != nil {
		return nil, err
	}
	if contourCount < 0 {
		return nil, fmt.Errorf("glyph %d: %w", gid, ErrCompositeUnsupported)
	}
	ne := int(contourCount)

	xmin, _ := i16At(glyf, 2)
	ymin, _ := i16At(glyf, 4)
	xmax, _ := i16At(glyf, 6)
	ymax, _ := i16At(glyf, 8)

	r := newReader(glyf)
	if err := r.seek(10); err != nil {
		return nil, err
	}

	end := make([]int, ne)
	for i := 0; i < ne; i++ {
		v, err := r.readU16()
		if err != nil {
			return nil, err
		}
		end[i] = int(v) + 1
	}
	if ne == 0 {
		return &Glyph{Bounds: Box{int32(xmin), int32(ymin), int32(xmax), int32(ymax)}}, nil
	}

	instrLen, err := r.readU16()
	if err != nil {
		return nil, err
	}
	if err := r.skip(int(instrLen)); err != nil {
		return nil, err
	}

	n := end[ne-1]
	flags := make([]uint8, n)
	for i := 0; i < n; {
		c, err := r.readU8()
		if err != nil {
			return nil, err
		}
		flags[i] = c
		i++
		if c&flagRepeat != 0 {
			count, err := r.readU8()
			if err != nil {
				return nil, err
			}
			for ; count > 0 && i < n; count-- {
				flags[i] = c
				i++
			}
		}
	}

	xs := make([]float64, n)
	var x int16
	for i := 0; i < n; i++ {
		fl := flags[i]
		switch {
		case fl&flagXShortVector != 0:
			dx, err := r.readU8()
			if err != nil {
				return nil, err
			}
			if fl&flagPositiveXShortVector == 0 {
				x -= int16(dx)
			} else {
				x += int16(dx)
			}
		case fl&flagThisXIsSame == 0:
			dx, err := r.readI16()
			if err != nil {
				return nil, err
			}
			x += dx
		}
		xs[i] = float64(x)
	}

	ys := make([]float64, n)
	var y int16
	for i := 0; i < n; i++ {
		fl := flags[i]
		switch {
		case fl&flagYShortVector != 0:
			dy, err := r.readU8()
			if err != nil {
				return nil, err
			}
			if fl&flagPositiveYShortVector == 0 {
				y -= int16(dy)
			} else {
				y += int16(dy)
			}
		case fl&flagThisYIsSame == 0:
			dy, err := r.readI16()
			if err != nil {
				return nil, err
			}
			y += dy
		}
		ys[i] = float64(y)
	}

	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = Point{X: xs[i], Y: ys[i], OnCurve: flags[i]&flagOnCurve != 0}
	}

	return &Glyph{
		Bounds: Box{int32(xmin), int32(ymin), int32(xmax), int32(ymax)},
		Points: points,
		End:    end,
	}, nil
}
