package policy

import (
	"strings"
	"testing"

	"strlint/internal/cluster"
	"strlint/internal/diag"
	"strlint/internal/source"
)

func reportFor(t *testing.T, scalars []cluster.Scalar, opts ReportOpts) []diag.Diagnostic {
	t.Helper()
	_, decisions, verdict := analyze(t, scalars)
	return Report(verdict, decisions, opts)
}

func findCode(diags []diag.Diagnostic, code diag.Code) (diag.Diagnostic, bool) {
	for _, d := range diags {
		if d.Code == code {
			return d, true
		}
	}
	return diag.Diagnostic{}, false
}

// Сценарий: обычное смешение — оба рендера, литеральный конформен.
func TestReportMixedCarriesBothRenderings(t *testing.T) {
	in := []cluster.Scalar{
		{Value: 'Ü', Authored: cluster.FormLiteral},
		{Value: 'ö', Authored: cluster.FormUnicodeEscape},
	}
	diags := reportFor(t, in, ReportOpts{})
	d, ok := findCode(diags, diag.StyleMixedRepresentation)
	if !ok {
		t.Fatalf("want StyleMixedRepresentation in %+v", diags)
	}
	if len(d.Fixes) != 2 {
		t.Fatalf("want 2 fixes, got %d", len(d.Fixes))
	}
	if !d.Fixes[0].Preferred || d.Fixes[1].Preferred {
		t.Fatalf("escaped rendering must be the preferred fix: %+v", d.Fixes)
	}
	if got := d.Fixes[1].Edits[0].NewText; got != `"Üö"` {
		t.Fatalf("literal rendering: want %q, got %q", `"Üö"`, got)
	}
}

// Спорный случай: литеральный текст против обязательного escape.
// Диагностика обязана нести ОБА кандидата, хотя литеральный рендер
// сам по себе не конформен.
func TestReportAmbiguousCarriesBothRenderings(t *testing.T) {
	in := []cluster.Scalar{
		{Value: 0x1F3FD, Authored: cluster.FormUnicodeEscape},
		{Value: ' ', Authored: cluster.FormLiteral},
		{Value: 'Ü', Authored: cluster.FormLiteral},
	}
	sp := source.Span{Start: 8, End: 22}
	diags := reportFor(t, in, ReportOpts{LiteralSpan: sp})
	d, ok := findCode(diags, diag.StyleAmbiguousRepresentation)
	if !ok {
		t.Fatalf("want StyleAmbiguousRepresentation in %+v", diags)
	}
	if len(d.Fixes) != 2 {
		t.Fatalf("ambiguous diagnostic must offer both candidate renderings, got %d fix(es): %+v", len(d.Fixes), d.Fixes)
	}

	escaped := d.Fixes[0]
	if !escaped.Preferred {
		t.Fatalf("escaped rendering must stay preferred: %+v", d.Fixes)
	}
	if got := escaped.Edits[0].NewText; strings.ContainsRune(got, 'Ü') {
		t.Fatalf("escaped rendering left a literal: %q", got)
	}

	// второй кандидат: Ü литералом, обязательный модификатор — escape'ом
	literal := d.Fixes[1]
	if literal.Preferred {
		t.Fatalf("literal-maximizing rendering must not be preferred")
	}
	got := literal.Edits[0].NewText
	if !strings.ContainsRune(got, 'Ü') {
		t.Fatalf("literal rendering must keep Ü literal: %q", got)
	}
	if !strings.Contains(got, `\u{1F3FD}`) {
		t.Fatalf("literal rendering must keep the mandatory escape: %q", got)
	}
	if literal.Edits[0].Span != sp {
		t.Fatalf("fix must rewrite the literal span: %+v", literal.Edits[0].Span)
	}

	if len(d.Notes) == 0 || !strings.Contains(d.Notes[0].Msg, "both renderings") {
		t.Fatalf("ambiguous diagnostic must explain the conflict: %+v", d.Notes)
	}
}
