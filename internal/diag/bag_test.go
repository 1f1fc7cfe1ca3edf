package diag

import (
	"testing"

	"strlint/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 0, Start: 0, End: 1}
	if !b.Add(NewError(LexBadEscape, sp, "one")) {
		t.Fatalf("first Add must succeed")
	}
	if !b.Add(NewError(LexBadEscape, sp, "two")) {
		t.Fatalf("second Add must succeed")
	}
	if b.Add(NewError(LexBadEscape, sp, "three")) {
		t.Fatalf("Add above the cap must be rejected")
	}
	if b.Len() != 2 {
		t.Fatalf("want 2 items, got %d", b.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	b := NewBag(8)
	b.Add(NewWarning(StyleMixedRepresentation, source.Span{File: 0, Start: 9, End: 10}, "later"))
	b.Add(NewError(LexUnterminatedString, source.Span{File: 0, Start: 2, End: 5}, "earlier"))
	b.Add(NewWarning(StyleInvisibleNotEscaped, source.Span{File: 0, Start: 2, End: 5}, "same span, lower sev"))
	b.Sort()

	items := b.Items()
	if items[0].Message != "earlier" {
		t.Fatalf("expected error at span 2-5 first, got %q", items[0].Message)
	}
	if items[2].Message != "later" {
		t.Fatalf("expected span 9-10 last, got %q", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	sp := source.Span{File: 1, Start: 4, End: 6}
	b.Add(NewWarning(StyleMixedRepresentation, sp, "a"))
	b.Add(NewWarning(StyleMixedRepresentation, sp, "b"))
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("dedup by code+span: want 1, got %d", b.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{LexBadEscape, "LEX1002"},
		{StyleMixedRepresentation, "STY2001"},
		{SegBadBoundaries, "SEG3001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Fatalf("ID(%d): want %q, got %q", tc.code, tc.want, got)
		}
	}
}
