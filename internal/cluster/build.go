package cluster

import (
	"strlint/internal/grapheme"
	"strlint/internal/scalar"
)

// Build groups decoded scalars into grapheme clusters using the
// supplied segmenter and attaches classifier output to every scalar.
// The input is never mutated. Invariant: Flatten(Build(s, seg))
// reproduces s exactly — no scalar is duplicated or dropped.
//
// Inconsistent boundaries from the segmenter surface as a
// *grapheme.SegmentationError; the builder never guesses.
func Build(scalars []Scalar, seg grapheme.Segmenter) ([]Cluster, error) {
	values := make([]rune, len(scalars))
	for i, sc := range scalars {
		values[i] = sc.Value
	}

	boundaries := seg.Boundaries(values)
	if err := grapheme.Validate(boundaries, len(scalars)); err != nil {
		return nil, err
	}
	if len(scalars) == 0 {
		return nil, nil
	}

	out := make([]Cluster, 0, len(boundaries))
	for i, start := range boundaries {
		end := len(scalars)
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
		}
		part := make([]Scalar, end-start)
		copy(part, scalars[start:end])
		for j := range part {
			part[j].Cat = scalar.Classify(part[j].Value)
		}
		out = append(out, Cluster{Scalars: part})
	}
	return out, nil
}

// FromRunes wraps plain scalars as authored-literal input and builds
// clusters. Convenience for callers that analyse decoded text without
// source spelling information.
func FromRunes(values []rune, seg grapheme.Segmenter) ([]Cluster, error) {
	scalars := make([]Scalar, len(values))
	for i, r := range values {
		scalars[i] = Scalar{Value: r, Authored: FormLiteral}
	}
	return Build(scalars, seg)
}
