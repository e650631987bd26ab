package sfnt

import "errors"

// Sentinel errors, one per failure kind a caller may want to distinguish
// with errors.Is. Call sites wrap these with additional context via
// fmt.Errorf("...: %w", Err...).
var (
	// ErrTruncatedInput is returned when a read would exceed the font's
	// byte slice.
	ErrTruncatedInput = errors.New("sfnt: truncated input")

	// ErrMissingRequiredTable is returned when OS/2, hmtx, or (glyf+loca)
	// is absent from the font directory.
	ErrMissingRequiredTable = errors.New("sfnt: missing required table")

	// ErrUnsupportedCmapFormat is returned when the chosen cmap subtable
	// is not format 4.
	ErrUnsupportedCmapFormat = errors.New("sfnt: unsupported cmap format")

	// ErrUnsupportedValueFormat is returned when a GPOS pair-adjustment
	// value format other than {x_advance only, empty} is encountered.
	ErrUnsupportedValueFormat = errors.New("sfnt: unsupported GPOS value format")

	// ErrInvalidGlyphIndex is returned when a glyph index is >= glyph_count.
	ErrInvalidGlyphIndex = errors.New("sfnt: invalid glyph index")

	// ErrGlyphHasNoOutline is returned for an empty glyph (loca[i] == loca[i+1]).
	ErrGlyphHasNoOutline = errors.New("sfnt: glyph has no outline")

	// ErrCompositeUnsupported is returned for a glyph whose contour count
	// is negative (composite glyph); composite glyphs are a Non-goal.
	ErrCompositeUnsupported = errors.New("sfnt: composite glyphs are unsupported")

	// ErrNoDefaultLang is returned when a GPOS lookup is requested but the
	// script list has no "DFLT" entry.
	ErrNoDefaultLang = errors.New("sfnt: GPOS has no DFLT script")
)
