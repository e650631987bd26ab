package sfnt

import (
	"fmt"
	"unicode/utf16"
)

const (
	namePlatformMicrosoft     = 3
	nameEncodingWindowsBMP    = 1
	nameLanguageEnglishUS     = 0x0409
)

// Name returns the decoded string for the given name table ID (e.g. 1
// for Family, 2 for Subfamily, 4 for Full name), reading only the
// Microsoft/Windows-Unicode-BMP/English-US record most real-world fonts
// carry. It returns ok=false if the name table is absent or has no
// matching record, never an error: name lookup is informational, not
// required for rendering (SPEC_FULL.md §4).
func (f *Font) Name(nameID uint16) (value string, ok bool) {
	if !f.tables.name.present() || f.tables.name.length == 0 {
		return "", false
	}
	nm := f.tables.name.slice(f.data)
	if len(nm) < 6 {
		return "", false
	}
	count, err := u16At(nm, 2)
	if err != nil {
		return "", false
	}
	storageOffset, err := u16At(nm, 4)
	if err != nil {
		return "", false
	}

	for i := 0; i < int(count); i++ {
		rec := 6 + 12*i
		if rec+12 > len(nm) {
			return "", false
		}
		platformID, err := u16At(nm, rec)
		if err != nil {
			return "", false
		}
		encodingID, err := u16At(nm, rec+2)
		if err != nil {
			return "", false
		}
		languageID, err := u16At(nm, rec+4)
		if err != nil {
			return "", false
		}
		recNameID, err := u16At(nm, rec+6)
		if err != nil {
			return "", false
		}
		length, err := u16At(nm, rec+8)
		if err != nil {
			return "", false
		}
		strOffset, err := u16At(nm, rec+10)
		if err != nil {
			return "", false
		}

		if platformID != namePlatformMicrosoft || encodingID != nameEncodingWindowsBMP ||
			languageID != nameLanguageEnglishUS || recNameID != nameID {
			continue
		}

		start := int(storageOffset) + int(strOffset)
		end := start + int(length)
		if start < 0 || end > len(nm) || end < start {
			return "", false
		}
		s, err := decodeUTF16BE(nm[start:end])
		if err != nil {
			return "", false
		}
		return s, true
	}
	return "", false
}

func decodeUTF16BE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("name record: odd byte length")
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		v, err := u16At(b, 2*i)
		if err != nil {
			return "", err
		}
		units[i] = v
	}
	return string(utf16.Decode(units)), nil
}
