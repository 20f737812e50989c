package partitions

import (
	"fmt"
	"iter"
)

// Nonuniform holds independently specified element ranges in append order.
// Ranges may be disjoint, adjacent or overlapping; keeping them sensible is up
// to the caller.
type Nonuniform struct {
	ranges []ElementRange
}

var _ Partition = (*Nonuniform)(nil)

func NewNonuniform() *Nonuniform {
	return &Nonuniform{}
}

// AppendRange adds the element [start, end) after all existing elements
func (nu *Nonuniform) AppendRange(start, end int) {
	if start < 0 || start > end {
		panic(fmt.Sprintf("invalid element range [%d,%d)", start, end))
	}
	nu.ranges = append(nu.ranges, ElementRange{Start: start, End: end})
}

func (nu *Nonuniform) Clear() {
	nu.ranges = nu.ranges[:0]
}

func (nu *Nonuniform) Size() int { return len(nu.ranges) }

func (nu *Nonuniform) At(i int) ElementRange {
	return nu.ranges[i]
}

func (nu *Nonuniform) All() iter.Seq2[int, ElementRange] {
	return func(yield func(int, ElementRange) bool) {
		for i, r := range nu.ranges {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Begin returns a forward iterator at the first element
func (nu *Nonuniform) Begin() NonuniformIterator {
	return NonuniformIterator{parent: nu}
}

// NonuniformIterator walks a Nonuniform partition front to back
type NonuniformIterator struct {
	parent *Nonuniform
	index  int
}

func (it NonuniformIterator) Index() int { return it.index }

func (it NonuniformIterator) Valid() bool {
	return it.parent != nil && it.index < len(it.parent.ranges)
}

func (it NonuniformIterator) Range() ElementRange {
	return it.parent.ranges[it.index]
}

func (it NonuniformIterator) Next() NonuniformIterator {
	it.index++
	return it
}
