package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	in := []byte("a\r\nb\rc\r\n")
	out, changed := normalizeCRLF(in)
	if !changed {
		t.Fatalf("expected changed=true")
	}
	want := []byte("a\nb\rc\n")
	if !bytes.Equal(out, want) {
		t.Fatalf("normalizeCRLF mismatch: want %q, got %q", want, out)
	}

	clean := []byte("no carriage returns")
	out, changed = normalizeCRLF(clean)
	if changed || !bytes.Equal(out, clean) {
		t.Fatalf("clean input must pass through unchanged")
	}
}

func TestRemoveBOM(t *testing.T) {
	in := []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}
	out, had := removeBOM(in)
	if !had || !bytes.Equal(out, []byte("hi")) {
		t.Fatalf("BOM not stripped: had=%v out=%q", had, out)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.txt", []byte("one\ntwo\nthree"))

	start, end := fs.Resolve(Span{File: id, Start: 4, End: 7})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start: want 2:1, got %d:%d", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 4 {
		t.Fatalf("end: want 2:4, got %d:%d", end.Line, end.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.txt", []byte("alpha\nbeta\ngamma"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "alpha"},
		{2, "beta"},
		{3, "gamma"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Fatalf("GetLine(%d): want %q, got %q", tc.line, tc.want, got)
		}
	}
}
