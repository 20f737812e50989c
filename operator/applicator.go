package operator

import (
	"fmt"

	"github.com/notargets/DGElwise/partitions"
	"gonum.org/v1/gonum/mat"
)

// Applicator applies one local matrix as a block diagonal operator over every
// element of a partition, accumulating into a Target
type Applicator interface {
	// Apply adds m * operand[r] into result[r] for every element range r
	Apply(p partitions.Partition, m mat.Matrix, t Target) error

	// ApplyScaled adds scale[i] * m * operand[r] for element i with range r
	ApplyScaled(p partitions.Partition, scale []float64, m mat.Matrix, t Target) error
}

// Generic works with any partition and any Target, calling the target once
// per element in partition order
type Generic struct{}

var _ Applicator = Generic{}

func (Generic) Apply(p partitions.Partition, m mat.Matrix, t Target) error {
	for i, r := range p.All() {
		if err := t.AddCoefficients(r.Start, r.End, r.Start, r.End, m); err != nil {
			return fmt.Errorf("element %d %v: %w", i, r, err)
		}
	}
	return nil
}

// ApplyScaled does not check len(scale) up front. A short scale vector
// fails with ErrOutOfRange at the first element without a factor, after the
// preceding elements have been accumulated.
func (Generic) ApplyScaled(p partitions.Partition, scale []float64, m mat.Matrix, t Target) error {
	for i, r := range p.All() {
		if i >= len(scale) {
			return fmt.Errorf("%w: no scale factor for element %d, have %d", ErrOutOfRange, i, len(scale))
		}
		if err := t.AddScaledCoefficients(r.Start, r.End, r.Start, r.End, scale[i], m); err != nil {
			return fmt.Errorf("element %d %v: %w", i, r, err)
		}
	}
	return nil
}
