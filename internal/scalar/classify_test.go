package scalar

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		r    rune
		want Category
	}{
		{"letter", 'a', AsciiPrintable},
		{"space", ' ', AsciiPrintable},
		{"tilde", '~', AsciiPrintable},
		{"tab", '\t', AsciiSpecialEscape},
		{"newline", '\n', AsciiSpecialEscape},
		{"carriage return", '\r', AsciiSpecialEscape},
		{"double quote", '"', AsciiSpecialEscape},
		{"single quote", '\'', AsciiSpecialEscape},
		{"backslash", '\\', AsciiSpecialEscape},
		{"nul", 0, AsciiSpecialEscape},
		{"bell", '\x07', InvisibleOrControl},
		{"del", '\x7F', InvisibleOrControl},
		{"zero width space", '​', InvisibleOrControl},
		{"bom", '\uFEFF', InvisibleOrControl},
		{"line separator", ' ', InvisibleOrControl},
		{"combining diaeresis", '̈', Modifier},
		{"variation selector 16", '️', Modifier},
		{"skin tone modifier", '\U0001F3FD', Modifier},
		{"zwj", '‍', Modifier},
		{"zwnj", '‌', Modifier},
		{"u-umlaut", 'Ü', PrintableBase},
		{"cyrillic", 'ж', PrintableBase},
		{"emoji", '\U0001F600', PrintableBase},
		{"cjk", '語', PrintableBase},
	}
	for _, tc := range cases {
		if got := Classify(tc.r); got != tc.want {
			t.Fatalf("%s (U+%04X): want %v, got %v", tc.name, tc.r, tc.want, got)
		}
	}
}

// Неназначенные скаляры не должны ронять анализ: fail open.
func TestClassifyUnassignedFailsOpen(t *testing.T) {
	if got := Classify(0xE0000 + 0x5000); got != PrintableBase {
		t.Fatalf("unassigned scalar: want PrintableBase, got %v", got)
	}
}

func TestEscapeSpelling(t *testing.T) {
	if s, ok := EscapeSpelling('\n'); !ok || s != `\n` {
		t.Fatalf(`want \n, got %q (ok=%v)`, s, ok)
	}
	if _, ok := EscapeSpelling('a'); ok {
		t.Fatalf("plain letter must have no special spelling")
	}
}
