package policy

import (
	"testing"

	"strlint/internal/cluster"
	"strlint/internal/escape"
	"strlint/internal/grapheme"
)

func analyze(t *testing.T, scalars []cluster.Scalar) ([]cluster.Cluster, []escape.Decision, Verdict) {
	t.Helper()
	clusters, err := cluster.Build(scalars, grapheme.UAX29{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	decisions := escape.Decide(clusters)
	return clusters, decisions, Check(clusters, decisions)
}

func literals(values string) []cluster.Scalar {
	out := make([]cluster.Scalar, 0, len(values))
	for _, r := range values {
		out = append(out, cluster.Scalar{Value: r, Authored: cluster.FormLiteral})
	}
	return out
}

// Сценарий: чистый литеральный текст — конформен, предпочтительная форма.
func TestCheckAllLiteralConforms(t *testing.T) {
	_, _, verdict := analyze(t, literals("Übergröße"))
	if !verdict.Conforms() {
		t.Fatalf("pure literal text must conform: %+v", verdict.Violations)
	}
}

// Сценарий: одиночный модификатор, записанный escape'ом — конформен.
func TestCheckIsolatedModifierEscapedConforms(t *testing.T) {
	in := []cluster.Scalar{{Value: 0x0308, Authored: cluster.FormUnicodeEscape}}
	_, _, verdict := analyze(t, in)
	if !verdict.Conforms() {
		t.Fatalf("pure escape form must conform: %+v", verdict.Violations)
	}
}

// Сценарий: спецсимволы короткими формами — конформен.
func TestCheckSpecialEscapesConform(t *testing.T) {
	in := []cluster.Scalar{
		{Value: '"', Authored: cluster.FormSpecialEscape},
		{Value: '\n', Authored: cluster.FormSpecialEscape},
		{Value: '\\', Authored: cluster.FormSpecialEscape},
	}
	_, _, verdict := analyze(t, in)
	if !verdict.Conforms() {
		t.Fatalf("short escape forms must conform: %+v", verdict.Violations)
	}
}

// Сценарий: литеральный Ü плюс escape-ö — смешение представлений.
func TestCheckMixedRepresentation(t *testing.T) {
	in := []cluster.Scalar{
		{Value: 'Ü', Authored: cluster.FormLiteral},
		{Value: ' ', Authored: cluster.FormLiteral},
		{Value: 'ö', Authored: cluster.FormUnicodeEscape},
	}
	_, decisions, verdict := analyze(t, in)
	if verdict.Conforms() {
		t.Fatalf("mixed representation must not conform")
	}
	v := verdict.Violations[0]
	if v.Kind != MixedRepresentation || v.Ambiguous {
		t.Fatalf("want plain MixedRepresentation, got %+v", v)
	}
	if v.Value != 'ö' {
		t.Fatalf("offender: want ö, got U+%04X", v.Value)
	}

	// предложенный рендер экранирует оба
	suggested := SuggestEscaped(decisions)
	for _, d := range suggested {
		if d.Value >= 0x80 && d.Kind == escape.AsLiteral {
			t.Fatalf("suggested rendering left U+%04X literal", d.Value)
		}
	}
}

// Сценарий: литеральный Ü плюс изолированный модификатор кожи —
// неразрешимый случай, оба рендера в диагностике.
func TestCheckAmbiguousEdgeCase(t *testing.T) {
	// модификатор в начале литерала — единственная позиция, где UAX #29
	// не приклеит его к предыдущему скаляру
	in := []cluster.Scalar{
		{Value: 0x1F3FD, Authored: cluster.FormUnicodeEscape},
		{Value: ' ', Authored: cluster.FormLiteral},
		{Value: 'Ü', Authored: cluster.FormLiteral},
	}
	_, decisions, verdict := analyze(t, in)
	if verdict.Conforms() {
		t.Fatalf("edge case must be surfaced, not silently accepted")
	}
	found := false
	for _, v := range verdict.Violations {
		if v.Kind == MixedRepresentation && v.Ambiguous && v.Value == 0x1F3FD {
			found = true
		}
	}
	if !found {
		t.Fatalf("want ambiguous MixedRepresentation on the modifier, got %+v", verdict.Violations)
	}

	// конформного литерально-максимизирующего рендера нет; второй
	// кандидат в диагностику прикладывает Report, минуя эту проверку
	if _, ok := SuggestLiteral(decisions); ok {
		t.Fatalf("no conforming literal-maximizing rendering exists in the ambiguous case")
	}
}

func TestCheckAuthoredFormViolations(t *testing.T) {
	cases := []struct {
		name string
		in   []cluster.Scalar
		want ViolationKind
	}{
		{
			"raw tab",
			[]cluster.Scalar{{Value: '\t', Authored: cluster.FormLiteral}},
			MissingSpecialEscape,
		},
		{
			"tab as unicode escape",
			[]cluster.Scalar{{Value: '\t', Authored: cluster.FormUnicodeEscape}},
			MissingSpecialEscape,
		},
		{
			"raw zero width space",
			[]cluster.Scalar{{Value: 0x200B, Authored: cluster.FormLiteral}},
			InvisibleNotEscaped,
		},
		{
			"raw isolated combining mark",
			[]cluster.Scalar{{Value: 0x0308, Authored: cluster.FormLiteral}},
			IsolatedModifierNotEscaped,
		},
		{
			"escaped attached modifier",
			[]cluster.Scalar{
				{Value: 'e', Authored: cluster.FormLiteral},
				{Value: 0x0301, Authored: cluster.FormUnicodeEscape},
			},
			AttachedModifierEscaped,
		},
	}
	for _, tc := range cases {
		_, _, verdict := analyze(t, tc.in)
		if verdict.Conforms() {
			t.Fatalf("%s: expected a violation", tc.name)
		}
		found := false
		for _, v := range verdict.Violations {
			if v.Kind == tc.want {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: want %v, got %+v", tc.name, tc.want, verdict.Violations)
		}
	}
}

// reanalyze повторяет анализ поверх уже принятых решений, как если бы
// предложенный рендер записали в исходник и прочитали заново.
func reanalyze(t *testing.T, decisions []escape.Decision) Verdict {
	t.Helper()
	scalars := make([]cluster.Scalar, len(decisions))
	for i, d := range decisions {
		form := cluster.FormLiteral
		switch d.Kind {
		case escape.AsSpecialEscape:
			form = cluster.FormSpecialEscape
		case escape.AsUnicodeEscape:
			form = cluster.FormUnicodeEscape
		}
		scalars[i] = cluster.Scalar{Value: d.Value, Authored: form}
	}
	_, _, verdict := analyze(t, scalars)
	return verdict
}

// Идемпотентность: применение предложенного рендера всегда даёт
// конформный литерал.
func TestSuggestedRenderingIdempotent(t *testing.T) {
	inputs := [][]cluster.Scalar{
		{
			{Value: 'Ü', Authored: cluster.FormLiteral},
			{Value: 'ö', Authored: cluster.FormUnicodeEscape},
		},
		{
			{Value: 0x1F3FD, Authored: cluster.FormUnicodeEscape},
			{Value: 'Ü', Authored: cluster.FormLiteral},
		},
		{
			{Value: '\t', Authored: cluster.FormLiteral},
			{Value: 0x200B, Authored: cluster.FormLiteral},
			{Value: 'ж', Authored: cluster.FormLiteral},
		},
		{
			{Value: 'e', Authored: cluster.FormLiteral},
			{Value: 0x0301, Authored: cluster.FormUnicodeEscape},
			{Value: 'ü', Authored: cluster.FormUnicodeEscape},
		},
	}
	for i, in := range inputs {
		_, decisions, _ := analyze(t, in)
		suggested := SuggestEscaped(decisions)
		if verdict := reanalyze(t, suggested); !verdict.Conforms() {
			t.Fatalf("input %d: suggested rendering does not conform: %+v", i, verdict.Violations)
		}
	}
}

func TestSuggestLiteralConformsWhenOffered(t *testing.T) {
	in := []cluster.Scalar{
		{Value: 'Ü', Authored: cluster.FormLiteral},
		{Value: 'ö', Authored: cluster.FormUnicodeEscape},
	}
	_, decisions, _ := analyze(t, in)
	literal, ok := SuggestLiteral(decisions)
	if !ok {
		t.Fatalf("no mandatory escapes here; literal rendering must be offered")
	}
	if verdict := reanalyze(t, literal); !verdict.Conforms() {
		t.Fatalf("literal-maximizing rendering must conform: %+v", verdict.Violations)
	}
}
