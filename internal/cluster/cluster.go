// Package cluster builds the literal model: classified scalars grouped
// into grapheme clusters by an injected segmentation capability.
package cluster

import (
	"strlint/internal/scalar"
)

// Form records how the author spelled a scalar in the source literal.
// The checker needs it to tell "ö written literally" apart from
// "\u{F6}": the policy leaves that choice open for printable non-ASCII
// text but mandates a form everywhere else.
type Form uint8

const (
	// FormLiteral — the scalar appears as itself.
	FormLiteral Form = iota
	// FormSpecialEscape — one of the seven short escapes (\n, \" ...).
	FormSpecialEscape
	// FormUnicodeEscape — a generic numeric escape (\u{...} or \xNN).
	FormUnicodeEscape
)

func (f Form) String() string {
	switch f {
	case FormLiteral:
		return "literal"
	case FormSpecialEscape:
		return "special-escape"
	case FormUnicodeEscape:
		return "unicode-escape"
	}
	return "unknown"
}

// Scalar is one Unicode scalar of a literal's decoded content.
type Scalar struct {
	Value    rune
	Cat      scalar.Category
	Authored Form
}

// Cluster is a non-empty run of scalars perceived as one character.
// The first scalar is the anchor; the rest are attached.
type Cluster struct {
	Scalars []Scalar
}

// Anchor returns the cluster's base scalar.
func (c Cluster) Anchor() Scalar {
	return c.Scalars[0]
}

// Attached returns the non-anchor scalars (may be empty).
func (c Cluster) Attached() []Scalar {
	return c.Scalars[1:]
}

// Isolated reports whether the cluster has exactly one scalar.
func (c Cluster) Isolated() bool {
	return len(c.Scalars) == 1
}

// Flatten concatenates all clusters' scalars back into one sequence.
func Flatten(clusters []Cluster) []Scalar {
	var n int
	for _, c := range clusters {
		n += len(c.Scalars)
	}
	out := make([]Scalar, 0, n)
	for _, c := range clusters {
		out = append(out, c.Scalars...)
	}
	return out
}
