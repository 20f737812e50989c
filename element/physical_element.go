package element

import (
	"fmt"

	"github.com/notargets/DGElwise/partitions"
)

// GeometricTransform maps the reference line [-1,1] onto each physical
// element of a 1D mesh. Elements are affine, so the metric terms are one
// value per element; those per-element vectors are the scale factors of an
// elementwise operator application.
type GeometricTransform struct {
	// Physical node coordinates, element k occupying Ranges.At(k)
	X []float64

	Rx []float64 // dr/dx per element, scales Dr into d/dx
	J  []float64 // dx/dr per element, scales M into the physical mass matrix

	// Layout of the nodal DOFs, one range of Np per element
	Ranges *partitions.Uniform
}

// LineMesh is a 1D mesh of K line elements sharing one reference element
type LineMesh struct {
	*LineElement
	VX []float64 // K+1 vertex coordinates, strictly increasing
	K  int
	GeometricTransform
}

// NewLineMesh builds the mesh with elements [VX[k], VX[k+1]], node storage
// starting at DOF index 0
func NewLineMesh(le *LineElement, VX []float64) (lm *LineMesh, err error) {
	if len(VX) < 2 {
		return nil, fmt.Errorf("need at least 2 vertices, got %d", len(VX))
	}
	K := len(VX) - 1
	lm = &LineMesh{
		LineElement: le,
		VX:          VX,
		K:           K,
		GeometricTransform: GeometricTransform{
			X:      make([]float64, K*le.Np),
			Rx:     make([]float64, K),
			J:      make([]float64, K),
			Ranges: partitions.NewUniform(0, le.Np, K),
		},
	}
	for k, rng := range lm.Ranges.All() {
		h := VX[k+1] - VX[k]
		if !(h > 0) {
			return nil, fmt.Errorf("element %d has non-positive width %g", k, h)
		}
		lm.J[k] = h / 2
		lm.Rx[k] = 2 / h
		for i, r := range le.R {
			lm.X[rng.Start+i] = VX[k] + (r+1)*lm.J[k]
		}
	}
	return lm, nil
}

// NumDOF returns the length of a nodal field on the mesh
func (lm *LineMesh) NumDOF() int {
	return lm.Ranges.End()
}

// Project evaluates f at every node
func (lm *LineMesh) Project(f func(x float64) float64) []float64 {
	u := make([]float64, lm.NumDOF())
	for i, x := range lm.X {
		u[i] = f(x)
	}
	return u
}
