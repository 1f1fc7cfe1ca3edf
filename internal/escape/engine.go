package escape

import (
	"fmt"

	"strlint/internal/cluster"
	"strlint/internal/scalar"
)

// Decide computes the rendering for every scalar of every cluster, in
// cluster order, anchor before attached. The result is aligned 1:1
// with cluster.Flatten(clusters). Deterministic and side-effect-free.
//
// For printable non-ASCII scalars — the one place the policy leaves
// the choice open — the author's spelling is honored; the mixing
// checker decides afterwards whether the combination is acceptable.
func Decide(clusters []cluster.Cluster) []Decision {
	var out []Decision
	for _, cl := range clusters {
		isolated := cl.Isolated()
		for i, sc := range cl.Scalars {
			out = append(out, decideScalar(sc, isolated, i > 0))
		}
	}
	return out
}

func decideScalar(sc cluster.Scalar, isolated, attached bool) Decision {
	switch sc.Cat {
	case scalar.AsciiSpecialEscape:
		spelling, ok := scalar.EscapeSpelling(sc.Value)
		if !ok {
			// классификатор и таблица написаний обязаны совпадать
			panic(fmt.Sprintf("no escape spelling for U+%04X", sc.Value))
		}
		return Decision{Value: sc.Value, Kind: AsSpecialEscape, Reason: ReasonStructural, Spelling: spelling}

	case scalar.AsciiPrintable:
		return Decision{Value: sc.Value, Kind: AsLiteral, Reason: ReasonAsciiGlyph, Spelling: string(sc.Value)}

	case scalar.InvisibleOrControl:
		// невидимость — нет графической связи, которую стоило бы
		// сохранять; позиция в кластере не важна
		return Decision{Value: sc.Value, Kind: AsUnicodeEscape, Reason: ReasonInvisible, Spelling: UnicodeSpelling(sc.Value)}

	case scalar.Modifier:
		if attached && !isolated {
			// визуально склеен со своим якорем: escape оторвал бы
			// модификатор от глифа
			return Decision{Value: sc.Value, Kind: AsLiteral, Reason: ReasonAttachedModifier, Spelling: string(sc.Value)}
		}
		// изолированный, либо модификатор-якорь без базы
		return Decision{Value: sc.Value, Kind: AsUnicodeEscape, Reason: ReasonIsolatedModifier, Spelling: UnicodeSpelling(sc.Value)}

	default: // scalar.PrintableBase
		if sc.Value < 0x80 {
			return Decision{Value: sc.Value, Kind: AsLiteral, Reason: ReasonAsciiGlyph, Spelling: string(sc.Value)}
		}
		if sc.Authored == cluster.FormUnicodeEscape {
			return Decision{Value: sc.Value, Kind: AsUnicodeEscape, Reason: ReasonStylistic, Spelling: UnicodeSpelling(sc.Value)}
		}
		return Decision{Value: sc.Value, Kind: AsLiteral, Reason: ReasonStylistic, Spelling: string(sc.Value)}
	}
}
