package cluster

import (
	"errors"
	"testing"

	"strlint/internal/grapheme"
	"strlint/internal/scalar"
)

// фиктивный сегментер с заранее заданными границами
type fixedSeg struct{ boundaries []int }

func (f fixedSeg) Boundaries([]rune) []int { return f.boundaries }

func TestBuildGroupsAndClassifies(t *testing.T) {
	clusters, err := FromRunes([]rune{'e', 0x0301, 'x'}, grapheme.UAX29{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("want 2 clusters, got %d", len(clusters))
	}

	first := clusters[0]
	if first.Isolated() {
		t.Fatalf("e+combining must be one multi-scalar cluster")
	}
	if first.Anchor().Value != 'e' || first.Anchor().Cat != scalar.AsciiPrintable {
		t.Fatalf("anchor mismatch: %+v", first.Anchor())
	}
	if att := first.Attached(); len(att) != 1 || att[0].Cat != scalar.Modifier {
		t.Fatalf("attached mismatch: %+v", att)
	}

	if !clusters[1].Isolated() || clusters[1].Anchor().Value != 'x' {
		t.Fatalf("second cluster mismatch: %+v", clusters[1])
	}
}

func TestBuildFlattenRoundTrip(t *testing.T) {
	in := []rune("äÜb漢\U0001F469‍\U0001F4BB")
	clusters, err := FromRunes(in, grapheme.UAX29{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	flat := Flatten(clusters)
	if len(flat) != len(in) {
		t.Fatalf("flatten length: want %d, got %d", len(in), len(flat))
	}
	for i, sc := range flat {
		if sc.Value != in[i] {
			t.Fatalf("scalar %d: want U+%04X, got U+%04X", i, in[i], sc.Value)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	clusters, err := FromRunes(nil, grapheme.UAX29{})
	if err != nil || clusters != nil {
		t.Fatalf("empty input: want nil, nil; got %v, %v", clusters, err)
	}
}

func TestBuildRejectsBadBoundaries(t *testing.T) {
	bad := []fixedSeg{
		{boundaries: []int{1}},       // первая граница не 0
		{boundaries: []int{0, 0}},    // не возрастает
		{boundaries: []int{0, 9}},    // вне диапазона
		{boundaries: nil},            // пусто для непустого входа
	}
	for i, seg := range bad {
		_, err := FromRunes([]rune("ab"), seg)
		if err == nil {
			t.Fatalf("case %d: expected SegmentationError", i)
		}
		var segErr *grapheme.SegmentationError
		if !errors.As(err, &segErr) {
			t.Fatalf("case %d: want *grapheme.SegmentationError, got %T", i, err)
		}
	}
}
