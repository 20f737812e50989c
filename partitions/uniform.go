package partitions

import (
	"fmt"
	"iter"
)

// Uniform is a partition of ElementCount equally sized, contiguous elements
// beginning at DOF index Start. Element i covers
// [Start + i*ElementSize, Start + (i+1)*ElementSize).
type Uniform struct {
	start, elSize, elCount int
}

var _ Partition = (*Uniform)(nil)

// NewUniform creates an immutable uniform partition
func NewUniform(start, elementSize, elementCount int) *Uniform {
	if start < 0 || elementSize < 0 || elementCount < 0 {
		panic(fmt.Sprintf("invalid uniform partition: start=%d, elementSize=%d, elementCount=%d",
			start, elementSize, elementCount))
	}
	return &Uniform{
		start:   start,
		elSize:  elementSize,
		elCount: elementCount,
	}
}

func (u *Uniform) Size() int        { return u.elCount }
func (u *Uniform) Start() int       { return u.start }
func (u *Uniform) ElementSize() int { return u.elSize }

// End returns one past the last DOF covered by the partition
func (u *Uniform) End() int {
	return u.start + u.elCount*u.elSize
}

func (u *Uniform) At(i int) ElementRange {
	if i < 0 || i >= u.elCount {
		panic(fmt.Sprintf("element index %d out of range [0,%d)", i, u.elCount))
	}
	return u.rangeOf(i)
}

// rangeOf computes the range of element i without a bounds check
func (u *Uniform) rangeOf(i int) ElementRange {
	elStart := u.start + i*u.elSize
	return ElementRange{Start: elStart, End: elStart + u.elSize}
}

func (u *Uniform) All() iter.Seq2[int, ElementRange] {
	return func(yield func(int, ElementRange) bool) {
		for i := 0; i < u.elCount; i++ {
			if !yield(i, u.rangeOf(i)) {
				return
			}
		}
	}
}

// Begin returns an iterator positioned at the first element
func (u *Uniform) Begin() UniformIterator {
	return UniformIterator{parent: u, index: 0}
}

// Finish returns the past-the-end iterator
func (u *Uniform) Finish() UniformIterator {
	return UniformIterator{parent: u, index: u.elCount}
}

// UniformIterator is a random access cursor over a Uniform partition.
// Every operation is index arithmetic; nothing is materialized.
type UniformIterator struct {
	parent *Uniform
	index  int
}

func (it UniformIterator) Index() int { return it.index }

// Valid reports whether the iterator points at an element
func (it UniformIterator) Valid() bool {
	return it.parent != nil && it.index >= 0 && it.index < it.parent.elCount
}

// Range dereferences the iterator
func (it UniformIterator) Range() ElementRange {
	return it.parent.At(it.index)
}

func (it UniformIterator) Next() UniformIterator { return it.Advance(1) }
func (it UniformIterator) Prev() UniformIterator { return it.Advance(-1) }

// Advance moves the iterator n elements, n may be negative
func (it UniformIterator) Advance(n int) UniformIterator {
	it.index += n
	return it
}

// Distance returns the number of elements from it to other
func (it UniformIterator) Distance(other UniformIterator) int {
	return other.index - it.index
}

func (it UniformIterator) Equal(other UniformIterator) bool {
	return it.parent == other.parent && it.index == other.index
}
