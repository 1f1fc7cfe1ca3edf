// Package escape decides, scalar by scalar, how a string literal's
// content is rendered: literally, via a short escape, or via a
// generic Unicode escape.
package escape

import "fmt"

// Kind is the rendering chosen for one scalar.
type Kind uint8

const (
	AsLiteral Kind = iota
	AsSpecialEscape
	AsUnicodeEscape
)

func (k Kind) String() string {
	switch k {
	case AsLiteral:
		return "literal"
	case AsSpecialEscape:
		return "special-escape"
	case AsUnicodeEscape:
		return "unicode-escape"
	}
	return "unknown"
}

// Reason records why a rendering was chosen. Modeled as a variant,
// not a boolean, so the consistency checker can separate mandatory
// renderings from discretionary ones.
type Reason uint8

const (
	// ReasonStructural — quote/backslash/control with a dedicated
	// short form; escaping is unconditional.
	ReasonStructural Reason = iota
	// ReasonAsciiGlyph — plain printable ASCII stays literal.
	ReasonAsciiGlyph
	// ReasonInvisible — no graphical effect, always escaped.
	ReasonInvisible
	// ReasonIsolatedModifier — a modifier with nothing to attach to,
	// always escaped.
	ReasonIsolatedModifier
	// ReasonAttachedModifier — composes with its anchor, always
	// literal.
	ReasonAttachedModifier
	// ReasonStylistic — printable non-ASCII where both renderings are
	// admissible; the mixing checker arbitrates.
	ReasonStylistic
)

func (r Reason) String() string {
	switch r {
	case ReasonStructural:
		return "structural"
	case ReasonAsciiGlyph:
		return "ascii-glyph"
	case ReasonInvisible:
		return "invisible"
	case ReasonIsolatedModifier:
		return "isolated-modifier"
	case ReasonAttachedModifier:
		return "attached-modifier"
	case ReasonStylistic:
		return "stylistic"
	}
	return "unknown"
}

// Decision is the rendering verdict for one scalar. Computed fresh per
// analysis; aligned 1:1 with the input scalar sequence.
type Decision struct {
	Value    rune
	Kind     Kind
	Reason   Reason
	Spelling string // точный текст рендера
}

// Mandatory reports whether the rendering is forced by the policy
// rather than a stylistic choice.
func (d Decision) Mandatory() bool {
	return d.Reason != ReasonStylistic
}

func (d Decision) String() string {
	return fmt.Sprintf("U+%04X %s (%s) %q", d.Value, d.Kind, d.Reason, d.Spelling)
}

// UnicodeSpelling is the canonical generic escape for a scalar.
func UnicodeSpelling(r rune) string {
	return fmt.Sprintf(`\u{%X}`, r)
}
