package element

import "gonum.org/v1/gonum/mat"

// Dimensionality represents the spatial dimension of an element
type Dimensionality uint8

const (
	D0 Dimensionality = iota // 0D elements (points)
	D1                       // 1D elements (lines, edges)
	D2                       // 2D elements (triangles, quadrilaterals)
	D3                       // 3D elements (tetrahedra, hexahedra, etc.)
)

// ElementGeometry identifies the shape of an element
type ElementGeometry uint8

const (
	Tet ElementGeometry = iota
	Hex
	Prism
	Pyramid
	Tri
	Rectangle
	Line
)

// ElementProperties contains metadata describing an element type
type ElementProperties struct {
	Name       string          // Full descriptive name (e.g., "Lagrange Line Order 3")
	ShortName  string          // Abbreviated name (e.g., "Line3")
	Type       ElementGeometry // Element shape
	Order      int             // Polynomial order
	Np         int             // Total number of nodes/points in element
	NFp        int             // Number of nodes per face
	NFaces     int             // Number of faces in each element
	Dimensions Dimensionality  // Spatial dimension (1D, 2D, or 3D)
}

// NodalModalMatrices contains transformation matrices between nodal and modal representations
type NodalModalMatrices struct {
	V    mat.Matrix // Vandermonde matrix: modal to nodal transformation [Np × Np]
	Vinv mat.Matrix // Inverse Vandermonde: nodal to modal transformation [Np × Np]
	M    mat.Matrix // Mass matrix in nodal space [Np × Np]
	Minv mat.Matrix // Inverse mass matrix [Np × Np]
}

// ReferenceOperators contains differential operators in reference space [-1,1]^d
type ReferenceOperators struct {
	Dr mat.Matrix // Derivative with respect to r [Np × Np]

	// Surface-to-volume lifting operator
	// Maps face values to volume contribution [Np × (NFaces*NFp)]
	LIFT mat.Matrix
}

// ReferenceElement defines element properties and operators in reference space
type ReferenceElement interface {
	GetProperties() ElementProperties

	// Node coordinates in reference space, length Np
	GetNodes() []float64

	GetNodalModal() NodalModalMatrices
	GetReferenceOperators() ReferenceOperators
}

// ReferenceMatrices returns the element's square local operators keyed by
// name and short name, e.g. "Minv_Line3". These are the matrices applied
// elementwise over a mesh.
func ReferenceMatrices(el ReferenceElement) (refMats map[string]mat.Matrix) {
	var (
		props = el.GetProperties()
		nm    = el.GetNodalModal()
		ro    = el.GetReferenceOperators()
		sn    = props.ShortName
	)
	refMats = map[string]mat.Matrix{
		"V_" + sn:    nm.V,
		"Vinv_" + sn: nm.Vinv,
		"M_" + sn:    nm.M,
		"Minv_" + sn: nm.Minv,
		"Dr_" + sn:   ro.Dr,
	}
	return
}
