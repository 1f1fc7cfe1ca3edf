// Package grapheme abstracts Unicode grapheme-cluster segmentation.
//
// Segmentation is a generic, well-specified algorithm (UAX #29) that is
// orthogonal to the escape policy, so it is consumed as an injected
// capability instead of reimplemented. The default implementation wraps
// rivo/uniseg.
package grapheme

import "fmt"

// Segmenter supplies grapheme-cluster boundaries over a scalar
// sequence. Boundaries are 0-based scalar indices at which a cluster
// starts: for a non-empty input the first element must be 0, the
// sequence strictly increasing, every index < len(scalars).
//
// Implementations must be safe for concurrent read-only use; the
// engine analyses many literals in parallel through one Segmenter.
type Segmenter interface {
	Boundaries(scalars []rune) []int
}

// SegmentationError reports inconsistent boundaries from a Segmenter.
// Fatal to the single analysis call; the caller picks another
// segmenter or gives up, the engine never guesses boundaries.
type SegmentationError struct {
	Boundary int    // offending boundary value
	Index    int    // position in the boundary list
	Reason   string // почему границы отвергнуты
}

func (e *SegmentationError) Error() string {
	return fmt.Sprintf("grapheme: bad boundary %d at #%d: %s", e.Boundary, e.Index, e.Reason)
}

// Validate checks a boundary list against a scalar count.
func Validate(boundaries []int, n int) error {
	if n == 0 {
		if len(boundaries) != 0 {
			return &SegmentationError{Boundary: boundaries[0], Index: 0, Reason: "boundaries for empty input"}
		}
		return nil
	}
	if len(boundaries) == 0 {
		return &SegmentationError{Boundary: -1, Index: 0, Reason: "no boundaries for non-empty input"}
	}
	if boundaries[0] != 0 {
		return &SegmentationError{Boundary: boundaries[0], Index: 0, Reason: "first boundary must be 0"}
	}
	prev := -1
	for i, b := range boundaries {
		if b <= prev {
			return &SegmentationError{Boundary: b, Index: i, Reason: "boundaries must be strictly increasing"}
		}
		if b >= n {
			return &SegmentationError{Boundary: b, Index: i, Reason: "boundary out of range"}
		}
		prev = b
	}
	return nil
}
