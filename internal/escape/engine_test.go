package escape

import (
	"testing"

	"strlint/internal/cluster"
	"strlint/internal/grapheme"
	"strlint/internal/scalar"
)

func decide(t *testing.T, scalars []cluster.Scalar) []Decision {
	t.Helper()
	clusters, err := cluster.Build(scalars, grapheme.UAX29{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return Decide(clusters)
}

func literals(values string) []cluster.Scalar {
	out := make([]cluster.Scalar, 0, len(values))
	for _, r := range values {
		out = append(out, cluster.Scalar{Value: r, Authored: cluster.FormLiteral})
	}
	return out
}

// Сценарий: все скаляры печатные — всё остаётся литеральным.
func TestDecideAllPrintableStaysLiteral(t *testing.T) {
	decisions := decide(t, literals("Übergröße"))
	for i, d := range decisions {
		if d.Kind != AsLiteral {
			t.Fatalf("decision %d: want literal, got %v", i, d)
		}
	}
}

// Сценарий: одиночная комбинируемая диерезия — обязательный escape.
func TestDecideIsolatedModifierEscaped(t *testing.T) {
	decisions := decide(t, literals("̈"))
	if len(decisions) != 1 {
		t.Fatalf("want 1 decision, got %d", len(decisions))
	}
	d := decisions[0]
	if d.Kind != AsUnicodeEscape || d.Reason != ReasonIsolatedModifier {
		t.Fatalf("isolated modifier: got %v", d)
	}
	if d.Spelling != `\u{308}` {
		t.Fatalf("spelling: want \\u{308}, got %q", d.Spelling)
	}
}

// Сценарий: кавычка, перевод строки, бэкслеш — короткие формы.
func TestDecideSpecialEscapes(t *testing.T) {
	decisions := decide(t, literals("\"\n\\"))
	want := []string{`\"`, `\n`, `\\`}
	if len(decisions) != len(want) {
		t.Fatalf("want %d decisions, got %d", len(want), len(decisions))
	}
	for i, d := range decisions {
		if d.Kind != AsSpecialEscape || d.Reason != ReasonStructural {
			t.Fatalf("decision %d: got %v", i, d)
		}
		if d.Spelling != want[i] {
			t.Fatalf("decision %d: want %q, got %q", i, want[i], d.Spelling)
		}
	}
}

func TestDecideAttachedModifierStaysLiteral(t *testing.T) {
	decisions := decide(t, literals("é"))
	if len(decisions) != 2 {
		t.Fatalf("want 2 decisions, got %d", len(decisions))
	}
	if d := decisions[1]; d.Kind != AsLiteral || d.Reason != ReasonAttachedModifier {
		t.Fatalf("attached modifier: got %v", d)
	}
}

func TestDecideInvisibleAlwaysEscaped(t *testing.T) {
	// ZWSP внутри кластера и отдельно — в обоих случаях escape
	decisions := decide(t, literals("a​b"))
	if d := decisions[1]; d.Kind != AsUnicodeEscape || d.Reason != ReasonInvisible {
		t.Fatalf("invisible: got %v", d)
	}
}

// Авторская форма уважается только там, где политика оставляет выбор.
func TestDecideHonorsAuthoredFormForPrintableBase(t *testing.T) {
	in := []cluster.Scalar{
		{Value: 'Ü', Authored: cluster.FormUnicodeEscape},
		{Value: 'ö', Authored: cluster.FormLiteral},
	}
	decisions := decide(t, in)
	if d := decisions[0]; d.Kind != AsUnicodeEscape || d.Reason != ReasonStylistic {
		t.Fatalf("escaped Ü: got %v", d)
	}
	if d := decisions[1]; d.Kind != AsLiteral || d.Reason != ReasonStylistic {
		t.Fatalf("literal ö: got %v", d)
	}
}

// Инварианты: обязательные escapes и литеральность модификаторов.
func TestDecideMandatoryInvariants(t *testing.T) {
	in := literals("é ẍy ‍ ⁠ Ü\U0001F469‍\U0001F4BB")
	clusters, err := cluster.Build(in, grapheme.UAX29{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	decisions := Decide(clusters)

	flat := cluster.Flatten(clusters)
	if len(decisions) != len(flat) {
		t.Fatalf("alignment: %d decisions for %d scalars", len(decisions), len(flat))
	}

	idx := 0
	for _, cl := range clusters {
		for i, sc := range cl.Scalars {
			d := decisions[idx]
			idx++
			if sc.Cat == scalar.InvisibleOrControl && d.Kind == AsLiteral {
				t.Fatalf("invisible scalar U+%04X rendered literally", sc.Value)
			}
			if sc.Cat == scalar.Modifier {
				if cl.Isolated() && d.Kind != AsUnicodeEscape {
					t.Fatalf("isolated modifier U+%04X not escaped", sc.Value)
				}
				if !cl.Isolated() && i > 0 && d.Kind == AsUnicodeEscape {
					t.Fatalf("attached modifier U+%04X escaped", sc.Value)
				}
			}
		}
	}
}

func TestRenderConcatenatesSpellings(t *testing.T) {
	decisions := decide(t, literals("a\tÜ"))
	if got := Render(decisions); got != "a\\tÜ" {
		t.Fatalf("Render: want %q, got %q", "a\\tÜ", got)
	}
}
