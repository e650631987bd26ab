package sfnt

import "testing"

func TestScaleForPixelHeight(t *testing.T) {
	f := &Font{ascender: 1900, descender: -500}
	got := f.ScaleForPixelHeight(24)
	want := float32(24) / float32(1900+500)
	if got != want {
		t.Errorf("ScaleForPixelHeight(24) = %v, want %v", got, want)
	}
}

func TestFUnitToPixelScale(t *testing.T) {
	got := FUnitToPixelScale(12, 96, 1000)
	want := (12.0 * 96.0) / (72.0 * 1000.0)
	if got != want {
		t.Errorf("FUnitToPixelScale = %v, want %v", got, want)
	}
}

func TestFUnitToPixelScaleZeroUnitsPerEm(t *testing.T) {
	if got := FUnitToPixelScale(12, 96, 0); got != 0 {
		t.Errorf("FUnitToPixelScale with unitsPerEm=0 = %v, want 0", got)
	}
}
