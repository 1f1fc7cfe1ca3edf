package policy

import (
	"strlint/internal/escape"
)

// SuggestEscaped rewrites every discretionary non-ASCII literal to a
// Unicode escape. The result is always constructible and always
// conforms (no literal non-ASCII text remains outside mandatory
// attached modifiers), which is why it is the default suggestion even
// though it is not the stylistically preferred form.
func SuggestEscaped(decisions []escape.Decision) []escape.Decision {
	out := make([]escape.Decision, len(decisions))
	copy(out, decisions)
	for i, d := range out {
		if d.Kind == escape.AsLiteral && d.Reason == escape.ReasonStylistic && d.Value >= 0x80 {
			out[i] = escape.Decision{
				Value:    d.Value,
				Kind:     escape.AsUnicodeEscape,
				Reason:   escape.ReasonStylistic,
				Spelling: escape.UnicodeSpelling(d.Value),
			}
		}
	}
	return out
}

// SuggestLiteral rewrites every discretionary Unicode escape to the
// literal scalar — the preferred, literal-maximizing form. It is only
// offered when the literal contains no mandatory Unicode escape:
// otherwise the result would trigger the unresolved mixing case, and
// ok is false.
func SuggestLiteral(decisions []escape.Decision) (out []escape.Decision, ok bool) {
	for _, d := range decisions {
		if d.Kind == escape.AsUnicodeEscape && d.Reason != escape.ReasonStylistic {
			return nil, false
		}
	}
	return maximizeLiterals(decisions), true
}

// maximizeLiterals — сама перезапись, без проверки конформности:
// дискреционные escape'ы становятся литералами, обязательные остаются.
// В спорном случае это второй кандидат-рендер.
func maximizeLiterals(decisions []escape.Decision) []escape.Decision {
	out := make([]escape.Decision, len(decisions))
	copy(out, decisions)
	for i, d := range out {
		if d.Kind == escape.AsUnicodeEscape && d.Reason == escape.ReasonStylistic {
			out[i] = escape.Decision{
				Value:    d.Value,
				Kind:     escape.AsLiteral,
				Reason:   escape.ReasonStylistic,
				Spelling: string(d.Value),
			}
		}
	}
	return out
}
