package hwp5

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// strictChars lists the code units kept in table cells.
var strictChars = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x007E, Stride: 1}, // Basic Latin
		{Lo: 0x00A0, Hi: 0x00FF, Stride: 1}, // Latin-1 Supplement
		{Lo: 0x1100, Hi: 0x11FF, Stride: 1}, // Hangul Jamo
		{Lo: 0x2000, Hi: 0x206F, Stride: 1}, // General Punctuation
		{Lo: 0x2190, Hi: 0x21FF, Stride: 1}, // Arrows
		{Lo: 0x2200, Hi: 0x22FF, Stride: 1}, // Mathematical Operators
		{Lo: 0x2300, Hi: 0x23FF, Stride: 1}, // Miscellaneous Technical
		{Lo: 0x2460, Hi: 0x24FF, Stride: 1}, // Enclosed Alphanumerics
		{Lo: 0x2500, Hi: 0x257F, Stride: 1}, // Box Drawing
		{Lo: 0x25A0, Hi: 0x25FF, Stride: 1}, // Geometric Shapes
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // Miscellaneous Symbols
		{Lo: 0x3000, Hi: 0x303F, Stride: 1}, // CJK Symbols and Punctuation
		{Lo: 0x3130, Hi: 0x318F, Stride: 1}, // Hangul Compatibility Jamo
		{Lo: 0x3200, Hi: 0x32FF, Stride: 1}, // Enclosed CJK Letters
		{Lo: 0xAC00, Hi: 0xD7AF, Stride: 1}, // Hangul Syllables
		{Lo: 0xFF00, Hi: 0xFFEF, Stride: 1}, // Halfwidth and Fullwidth Forms
	},
	LatinOffset: 2,
}

// cjkIdeographs is the block dropped from table cells.
var cjkIdeographs = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}},
}

// lenientChars lists the code units kept in body text and note bodies.
var lenientChars = rangetable.Merge(strictChars, cjkIdeographs)

func lenientChar(c uint16) bool { return unicode.Is(lenientChars, rune(c)) }

func strictChar(c uint16) bool { return unicode.Is(strictChars, rune(c)) }

// keepsNextUnit reports whether the unit following a field or control code
// looks like the start of visible content, in which case no extension bytes
// are skipped.
func keepsNextUnit(next uint16) bool {
	switch {
	case next >= 0x0020 && next <= 0x007E,
		next >= 0xAC00 && next <= 0xD7AF,
		next >= 0x3130 && next <= 0x318F:
		return true
	case next == 3, next == 4, next == 11, next == 12, next == 13:
		return true
	case next >= 15 && next <= 23:
		return true
	}
	return false
}
