package scalar

// Category classifies a single Unicode scalar for escape-policy
// purposes. The category is a pure function of the scalar value and
// never depends on the scalar's position inside a literal.
type Category uint8

const (
	// AsciiPrintable covers 7-bit scalars with a graphical glyph,
	// space included, minus the seven short-escape characters.
	AsciiPrintable Category = iota
	// AsciiSpecialEscape covers the seven characters with a dedicated
	// short escape spelling: tab, newline, carriage return, both
	// quotes, backslash and NUL.
	AsciiSpecialEscape
	// InvisibleOrControl covers control/format scalars and anything
	// else with no graphical effect.
	InvisibleOrControl
	// Modifier covers combining marks, variation selectors, emoji
	// skin-tone modifiers and joiners: scalars whose role is to alter
	// a preceding scalar's rendering.
	Modifier
	// PrintableBase is everything else: a scalar that can stand alone.
	PrintableBase
)

func (c Category) String() string {
	switch c {
	case AsciiPrintable:
		return "ascii-printable"
	case AsciiSpecialEscape:
		return "ascii-special-escape"
	case InvisibleOrControl:
		return "invisible-or-control"
	case Modifier:
		return "modifier"
	case PrintableBase:
		return "printable-base"
	}
	return "unknown"
}
