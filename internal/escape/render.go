package escape

import "strings"

// Render concatenates decision spellings into the literal's body text
// (without the surrounding quotes). Re-decoding the result reproduces
// the original scalar sequence exactly: every Kind keeps the full
// code point, nothing is lossy.
func Render(decisions []Decision) string {
	var b strings.Builder
	for _, d := range decisions {
		b.WriteString(d.Spelling)
	}
	return b.String()
}

// Values extracts the scalar sequence a decision list renders.
func Values(decisions []Decision) []rune {
	out := make([]rune, len(decisions))
	for i, d := range decisions {
		out[i] = d.Value
	}
	return out
}
