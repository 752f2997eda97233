// Package interval implements an augmented interval tree over the unsigned
// 32-bit key space. It stores closed integer ranges and answers
// point-containment queries without a linear scan: the tree is kept balanced
// with red-black rotations, and every node caches the maximum upper bound of
// its subtree so the search can prune branches that cannot contain the key.
package interval

import "fmt"

// Interval is a closed range [low, high] over uint32 keys. Both endpoints
// are included in containment tests.
type Interval struct {
	low  uint32
	high uint32
}

// NewInterval returns a new Interval. Reversed bounds are accepted and
// swapped, so the stored interval always satisfies low <= high.
func NewInterval(low, high uint32) Interval {
	if high < low {
		low, high = high, low
	}
	return Interval{low: low, high: high}
}

// Low returns the lower bound of the interval.
func (i Interval) Low() uint32 {
	return i.low
}

// High returns the upper bound of the interval.
func (i Interval) High() uint32 {
	return i.high
}

func (i Interval) less(x Interval) bool {
	return i.low < x.low || i.low == x.low && i.high < x.high
}

func (i Interval) contains(key uint32) bool {
	return i.low <= key && key <= i.high
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d - %d]", i.low, i.high)
}
