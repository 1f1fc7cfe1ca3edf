package lexer

import (
	"testing"

	"strlint/internal/cluster"
	"strlint/internal/diag"
	"strlint/internal/escape"
	"strlint/internal/grapheme"
	"strlint/internal/source"
)

func scan(t *testing.T, src string) ([]Literal, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.src", []byte(src))
	bag := diag.NewBag(16)
	lits := ScanAll(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return lits, bag
}

func values(lit Literal) string {
	out := make([]rune, len(lit.Scalars))
	for i, sc := range lit.Scalars {
		out[i] = sc.Value
	}
	return string(out)
}

func TestScanPlainLiteral(t *testing.T) {
	lits, bag := scan(t, `x = "hello" + "мир"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(lits) != 2 {
		t.Fatalf("want 2 literals, got %d", len(lits))
	}
	if got := values(lits[0]); got != "hello" {
		t.Fatalf("first literal: want hello, got %q", got)
	}
	if got := values(lits[1]); got != "мир" {
		t.Fatalf("second literal: want мир, got %q", got)
	}
	if !lits[0].Terminated || !lits[1].Terminated {
		t.Fatalf("both literals are terminated")
	}
}

func TestScanDecodesEscapes(t *testing.T) {
	lits, bag := scan(t, `"a\n\t\"\\\0\x41\u{1F600}b"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	lit := lits[0]
	want := []struct {
		value rune
		form  cluster.Form
	}{
		{'a', cluster.FormLiteral},
		{'\n', cluster.FormSpecialEscape},
		{'\t', cluster.FormSpecialEscape},
		{'"', cluster.FormSpecialEscape},
		{'\\', cluster.FormSpecialEscape},
		{0, cluster.FormSpecialEscape},
		{'A', cluster.FormUnicodeEscape},
		{0x1F600, cluster.FormUnicodeEscape},
		{'b', cluster.FormLiteral},
	}
	if len(lit.Scalars) != len(want) {
		t.Fatalf("want %d scalars, got %d", len(want), len(lit.Scalars))
	}
	for i, w := range want {
		sc := lit.Scalars[i]
		if sc.Value != w.value || sc.Authored != w.form {
			t.Fatalf("scalar %d: want U+%04X %v, got U+%04X %v", i, w.value, w.form, sc.Value, sc.Authored)
		}
	}
}

func TestScanScalarSpansAlign(t *testing.T) {
	lits, _ := scan(t, `"a\u{308}"`)
	lit := lits[0]
	if len(lit.ScalarSpans) != len(lit.Scalars) {
		t.Fatalf("spans misaligned: %d spans, %d scalars", len(lit.ScalarSpans), len(lit.Scalars))
	}
	// 'a' занимает один байт после кавычки
	if sp := lit.ScalarSpans[0]; sp.Start != 1 || sp.End != 2 {
		t.Fatalf("span of a: want 1-2, got %v", sp)
	}
	// \u{308} занимает 7 байт
	if sp := lit.ScalarSpans[1]; sp.Start != 2 || sp.End != 9 {
		t.Fatalf("span of escape: want 2-9, got %v", sp)
	}
	if lit.Span.Start != 0 || lit.Span.End != 10 {
		t.Fatalf("literal span: want 0-10, got %v", lit.Span)
	}
}

func TestScanSkipsCommentsAndCharLiterals(t *testing.T) {
	src := "// \"not me\"\n/* \"nor me\" */ '\"' \"yes\""
	lits, bag := scan(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(lits) != 1 || values(lits[0]) != "yes" {
		t.Fatalf("want just the yes literal, got %d literals", len(lits))
	}
}

func TestScanReportsErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unterminated", `"abc`, diag.LexUnterminatedString},
		{"newline", "\"ab\nc\"", diag.LexNewlineInString},
		{"unknown escape", `"\q"`, diag.LexBadEscape},
		{"bad hex", `"\xZZ"`, diag.LexBadUnicodeEscape},
		{"u without braces", `"\u0308"`, diag.LexBadUnicodeEscape},
		{"surrogate", `"\u{D800}"`, diag.LexEscapeOutOfRange},
		{"too big", `"\u{110000}"`, diag.LexEscapeOutOfRange},
	}
	for _, tc := range cases {
		_, bag := scan(t, tc.src)
		found := false
		for _, d := range bag.Items() {
			if d.Code == tc.code {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: want code %v in %+v", tc.name, tc.code, bag.Items())
		}
	}
}

// Рендер решений, прочитанный заново сканером, воспроизводит ту же
// последовательность скаляров: ничего не теряется и не добавляется.
func TestRenderScanRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   []cluster.Scalar
	}{
		{
			"ascii with special escapes",
			[]cluster.Scalar{
				{Value: 'a', Authored: cluster.FormLiteral},
				{Value: '\n', Authored: cluster.FormLiteral},
				{Value: '"', Authored: cluster.FormLiteral},
				{Value: '\\', Authored: cluster.FormSpecialEscape},
				{Value: 'b', Authored: cluster.FormLiteral},
			},
		},
		{
			"invisible and isolated modifier",
			[]cluster.Scalar{
				{Value: 0x0308, Authored: cluster.FormUnicodeEscape},
				{Value: ' ', Authored: cluster.FormLiteral},
				{Value: 0x200B, Authored: cluster.FormLiteral},
			},
		},
		{
			"attached modifier stays literal",
			[]cluster.Scalar{
				{Value: 'e', Authored: cluster.FormLiteral},
				{Value: 0x0301, Authored: cluster.FormLiteral},
				{Value: 'Ü', Authored: cluster.FormLiteral},
			},
		},
		{
			"stylistic escapes kept",
			[]cluster.Scalar{
				{Value: 'ж', Authored: cluster.FormUnicodeEscape},
				{Value: 0x1F600, Authored: cluster.FormUnicodeEscape},
				{Value: '!', Authored: cluster.FormLiteral},
			},
		},
	}
	for _, tc := range cases {
		clusters, err := cluster.Build(tc.in, grapheme.UAX29{})
		if err != nil {
			t.Fatalf("%s: Build: %v", tc.name, err)
		}
		decisions := escape.Decide(clusters)
		lits, bag := scan(t, `"`+escape.Render(decisions)+`"`)
		if bag.HasErrors() {
			t.Fatalf("%s: rendered literal does not re-scan: %+v", tc.name, bag.Items())
		}
		if len(lits) != 1 {
			t.Fatalf("%s: want 1 literal, got %d", tc.name, len(lits))
		}
		got := lits[0].Scalars
		if len(got) != len(tc.in) {
			t.Fatalf("%s: want %d scalars, got %d", tc.name, len(tc.in), len(got))
		}
		for i := range got {
			if got[i].Value != tc.in[i].Value {
				t.Fatalf("%s: scalar %d: want U+%04X, got U+%04X", tc.name, i, tc.in[i].Value, got[i].Value)
			}
			wantForm := cluster.FormLiteral
			switch decisions[i].Kind {
			case escape.AsSpecialEscape:
				wantForm = cluster.FormSpecialEscape
			case escape.AsUnicodeEscape:
				wantForm = cluster.FormUnicodeEscape
			}
			if got[i].Authored != wantForm {
				t.Fatalf("%s: scalar %d: authored %v does not match decision %v", tc.name, i, got[i].Authored, decisions[i].Kind)
			}
		}
	}
}

// Восстановление: после плохого escape остальной литерал декодируется.
func TestScanRecoversAfterBadEscape(t *testing.T) {
	lits, bag := scan(t, `"a\qb"`)
	if !bag.HasErrors() {
		t.Fatalf("expected LexBadEscape")
	}
	if got := values(lits[0]); got != "aqb" {
		t.Fatalf("recovery: want aqb, got %q", got)
	}
}
