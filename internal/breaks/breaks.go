// Package breaks provides the natural-breaks classification used to pick the
// significant "head" of a scored collection.
package breaks

// Classifier partitions a scored collection and returns the indices of its
// significant head group, preserving input order. Implementations are
// pluggable so the break algorithm can be swapped without touching the
// comparison logic.
type Classifier interface {
	Head(scores []float64) []int
}

// HeadTails implements head/tails breaks: members scoring strictly above the
// collection mean form the head. It suits the heavy-tailed score
// distributions that field distances and feature contributions follow.
type HeadTails struct{}

// Head returns the indices of scores strictly above the mean. A singleton
// collection is its own head when its score is positive; an empty or
// all-equal collection has no head.
func (HeadTails) Head(scores []float64) []int {
	switch len(scores) {
	case 0:
		return nil
	case 1:
		if scores[0] > 0 {
			return []int{0}
		}
		return nil
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	var head []int
	for i, s := range scores {
		if s > mean {
			head = append(head, i)
		}
	}
	return head
}
