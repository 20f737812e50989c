package partitions

import (
	"fmt"
	"iter"
)

// ElementRange is the half-open DOF interval [Start, End) owned by one element
type ElementRange struct {
	Start int
	End   int
}

// Len returns the number of degrees of freedom in the range
func (r ElementRange) Len() int {
	return r.End - r.Start
}

func (r ElementRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Partition groups the elements of a global DOF vector into ranges.
// Ranges are produced in element order.
type Partition interface {
	// Size returns the number of elements
	Size() int

	// At returns the range of element i, 0 <= i < Size()
	At(i int) ElementRange

	// All yields (element index, range) pairs in element order
	All() iter.Seq2[int, ElementRange]
}
