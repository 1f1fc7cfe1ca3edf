package grapheme

import "github.com/rivo/uniseg"

// UAX29 segments scalars into extended grapheme clusters per
// Unicode Standard Annex #29, backed by rivo/uniseg. Stateless and
// re-entrant.
type UAX29 struct{}

func (UAX29) Boundaries(scalars []rune) []int {
	if len(scalars) == 0 {
		return nil
	}
	out := make([]int, 0, len(scalars))
	g := uniseg.NewGraphemes(string(scalars))
	idx := 0
	for g.Next() {
		out = append(out, idx)
		idx += len(g.Runes())
	}
	return out
}
