package scalar

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/rangetable"
)

// Короткие escape-формы. Ровно семь символов; всё остальное ниже 0x80
// с глифом — AsciiPrintable.
var specialEscapes = map[rune]string{
	'\t': `\t`,
	'\n': `\n`,
	'\r': `\r`,
	'"':  `\"`,
	'\'': `\'`,
	'\\': `\\`,
	0:    `\0`,
}

// EscapeSpelling returns the short escape form for the seven
// AsciiSpecialEscape characters.
func EscapeSpelling(r rune) (string, bool) {
	s, ok := specialEscapes[r]
	return s, ok
}

// Variation selectors plus emoji skin-tone modifiers plus ZWJ/ZWNJ.
// Combining marks are matched through the general categories below.
var modifierExtras = rangetable.New(
	'‌', // ZERO WIDTH NON-JOINER
	'‍', // ZERO WIDTH JOINER
)

var modifierRanges = rangetable.Merge(
	unicode.Mn,
	unicode.Mc,
	unicode.Me,
	unicode.Variation_Selector,
	&unicode.RangeTable{
		R32: []unicode.Range32{
			{Lo: 0x1F3FB, Hi: 0x1F3FF, Stride: 1}, // emoji modifiers (skin tones)
		},
	},
	modifierExtras,
)

var invisibleRanges = rangetable.Merge(
	unicode.Cc,
	unicode.Cf,
	unicode.Zl,
	unicode.Zp,
)

// Classify maps a scalar value to its Category. Total: unknown or
// unassigned scalars fail open to PrintableBase so nothing is ever
// dropped from analysis.
func Classify(r rune) Category {
	if _, ok := specialEscapes[r]; ok {
		return AsciiSpecialEscape
	}
	if r < 0x80 {
		if r >= 0x20 && r != 0x7F {
			return AsciiPrintable
		}
		// остальные ASCII-управляющие без короткой формы
		return InvisibleOrControl
	}
	// Modifier прежде invisible: ZWJ/ZWNJ имеют General Category Cf,
	// но по роли это модификаторы.
	if unicode.Is(modifierRanges, r) {
		return Modifier
	}
	if unicode.Is(invisibleRanges, r) {
		return InvisibleOrControl
	}
	// Зеро-ширинные без категории формата (ханг. филлеры и т.п.)
	if runewidth.RuneWidth(r) == 0 {
		return InvisibleOrControl
	}
	return PrintableBase
}
