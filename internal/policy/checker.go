// Package policy validates a whole literal's decision sequence against
// the escape-style rules and produces suggested renderings on
// violation.
//
// The core rule: a literal must not mix literally-rendered non-ASCII
// text with discretionary Unicode escapes. Mandatory renderings
// (short escapes, invisibles, isolated modifiers, attached modifiers)
// are exempt on both sides — they are never eligible for the other
// form in the first place.
package policy

import (
	"fmt"

	"strlint/internal/cluster"
	"strlint/internal/escape"
	"strlint/internal/scalar"
)

type ViolationKind uint8

const (
	MixedRepresentation ViolationKind = iota
	IsolatedModifierNotEscaped
	AttachedModifierEscaped
	InvisibleNotEscaped
	MissingSpecialEscape
)

func (k ViolationKind) String() string {
	switch k {
	case MixedRepresentation:
		return "mixed-representation"
	case IsolatedModifierNotEscaped:
		return "isolated-modifier-not-escaped"
	case AttachedModifierEscaped:
		return "attached-modifier-escaped"
	case InvisibleNotEscaped:
		return "invisible-not-escaped"
	case MissingSpecialEscape:
		return "missing-special-escape"
	}
	return "unknown"
}

// Violation is a style non-conformance. Data, not an error: analysis
// returns normally and always supplies a conforming rendering.
type Violation struct {
	Kind        ViolationKind
	Cluster     int // index of the offending cluster
	Scalar      int // index into the flattened scalar sequence
	Value       rune
	Explanation string
	// Ambiguous marks the unresolved precedence case: the literal
	// needs literal non-ASCII text AND a mandatory Unicode escape, so
	// no rendering satisfies every rule. Both candidates are offered.
	Ambiguous bool
}

// Verdict is the whole-literal outcome.
type Verdict struct {
	Violations []Violation
}

func (v Verdict) Conforms() bool {
	return len(v.Violations) == 0
}

// Check validates the decision sequence of one literal. decisions must
// be aligned with cluster.Flatten(clusters), as produced by
// escape.Decide.
func Check(clusters []cluster.Cluster, decisions []escape.Decision) Verdict {
	var verdict Verdict

	// Проход 1: авторская форма против обязательных правил.
	idx := 0
	for ci, cl := range clusters {
		for i, sc := range cl.Scalars {
			verdict.addFormViolation(ci, idx, sc, cl.Isolated(), i > 0)
			idx++
		}
	}

	// Проход 2: правило смешивания по всему литералу.
	var hasStylisticLiteral, hasStylisticEscape, hasMandatoryEscape bool
	for _, d := range decisions {
		switch {
		case d.Kind == escape.AsLiteral && d.Reason == escape.ReasonStylistic && d.Value >= 0x80:
			hasStylisticLiteral = true
		case d.Kind == escape.AsUnicodeEscape && d.Reason == escape.ReasonStylistic:
			hasStylisticEscape = true
		case d.Kind == escape.AsUnicodeEscape:
			hasMandatoryEscape = true
		}
	}

	if hasStylisticLiteral && hasStylisticEscape {
		verdict.addMixedViolations(clusters, decisions, false)
	}
	if hasStylisticLiteral && hasMandatoryEscape {
		// Неразрешимый спорный случай, правило против правила:
		// не выбираем сторону молча, репортим оба рендера.
		verdict.addMixedViolations(clusters, decisions, true)
	}

	return verdict
}

func (v *Verdict) addFormViolation(clusterIdx, scalarIdx int, sc cluster.Scalar, isolated, attached bool) {
	switch sc.Cat {
	case scalar.AsciiSpecialEscape:
		if sc.Authored != cluster.FormSpecialEscape {
			spelling, _ := scalar.EscapeSpelling(sc.Value)
			v.Violations = append(v.Violations, Violation{
				Kind:        MissingSpecialEscape,
				Cluster:     clusterIdx,
				Scalar:      scalarIdx,
				Value:       sc.Value,
				Explanation: fmt.Sprintf("U+%04X has the dedicated short escape %s; use it instead of a %s", sc.Value, spelling, sc.Authored),
			})
		}
	case scalar.InvisibleOrControl:
		if sc.Authored == cluster.FormLiteral {
			v.Violations = append(v.Violations, Violation{
				Kind:        InvisibleNotEscaped,
				Cluster:     clusterIdx,
				Scalar:      scalarIdx,
				Value:       sc.Value,
				Explanation: fmt.Sprintf("U+%04X has no visible glyph; write it as %s", sc.Value, escape.UnicodeSpelling(sc.Value)),
			})
		}
	case scalar.Modifier:
		if isolated && sc.Authored == cluster.FormLiteral {
			v.Violations = append(v.Violations, Violation{
				Kind:        IsolatedModifierNotEscaped,
				Cluster:     clusterIdx,
				Scalar:      scalarIdx,
				Value:       sc.Value,
				Explanation: fmt.Sprintf("modifier U+%04X has no base character in this literal; write it as %s", sc.Value, escape.UnicodeSpelling(sc.Value)),
			})
		}
		if attached && sc.Authored == cluster.FormUnicodeEscape {
			v.Violations = append(v.Violations, Violation{
				Kind:        AttachedModifierEscaped,
				Cluster:     clusterIdx,
				Scalar:      scalarIdx,
				Value:       sc.Value,
				Explanation: fmt.Sprintf("modifier U+%04X composes with its base glyph; escaping it would detach it from the character it modifies", sc.Value),
			})
		}
	}
}

func (v *Verdict) addMixedViolations(clusters []cluster.Cluster, decisions []escape.Decision, ambiguous bool) {
	idx := 0
	for ci, cl := range clusters {
		for range cl.Scalars {
			d := decisions[idx]
			offending := false
			var explanation string
			if !ambiguous && d.Kind == escape.AsUnicodeEscape && d.Reason == escape.ReasonStylistic {
				offending = true
				explanation = fmt.Sprintf("U+%04X is escaped while other non-ASCII text in this literal is written literally; pick one representation", d.Value)
			}
			if ambiguous && d.Kind == escape.AsUnicodeEscape && d.Reason != escape.ReasonStylistic {
				offending = true
				explanation = fmt.Sprintf("U+%04X must be escaped, but this literal also contains literal non-ASCII text; no rendering satisfies every rule", d.Value)
			}
			if offending {
				v.Violations = append(v.Violations, Violation{
					Kind:        MixedRepresentation,
					Cluster:     ci,
					Scalar:      idx,
					Value:       d.Value,
					Explanation: explanation,
					Ambiguous:   ambiguous,
				})
			}
			idx++
		}
	}
}
