package element

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiP evaluates the normalized Jacobi polynomial P_n^(alpha,beta) at x
func JacobiP(x []float64, alpha, beta float64, n int) []float64 {
	var (
		Np    = len(x)
		Pprev = make([]float64, Np)
		P     = make([]float64, Np)
	)

	gamma0 := Gamma0(alpha, beta)
	for i := range P {
		P[i] = 1.0 / math.Sqrt(gamma0)
	}
	if n == 0 {
		return P
	}

	copy(Pprev, P)
	gamma1 := Gamma1(alpha, beta)
	for i := range P {
		P[i] = ((alpha+beta+2)*x[i] + (alpha - beta)) / 2 / math.Sqrt(gamma1)
	}
	if n == 1 {
		return P
	}

	// three term recurrence
	aold := 2.0 / (2.0 + alpha + beta) * math.Sqrt((alpha+1)*(beta+1)/(alpha+beta+3))
	for i := 1; i < n; i++ {
		fi := float64(i)
		h1 := 2*fi + alpha + beta
		anew := 2.0 / (h1 + 2) * math.Sqrt((fi+1)*(fi+1+alpha+beta)*
			(fi+1+alpha)*(fi+1+beta)/(h1+1)/(h1+3))
		bnew := -(alpha*alpha - beta*beta) / h1 / (h1 + 2)

		for j := range P {
			next := (-aold*Pprev[j] + (x[j]-bnew)*P[j]) / anew
			Pprev[j], P[j] = P[j], next
		}
		aold = anew
	}
	return P
}

// GradJacobiP evaluates d/dx P_n^(alpha,beta) at x
func GradJacobiP(x []float64, alpha, beta float64, n int) []float64 {
	dP := make([]float64, len(x))
	if n == 0 {
		return dP
	}
	Ptemp := JacobiP(x, alpha+1, beta+1, n-1)
	fac := math.Sqrt(float64(n) * (float64(n) + alpha + beta + 1))
	for i := range dP {
		dP[i] = fac * Ptemp[i]
	}
	return dP
}

// JacobiGQ computes the N+1 point Gauss quadrature for weight
// (1-x)^alpha (1+x)^beta, nodes ascending
func JacobiGQ(alpha, beta float64, N int) (X, W []float64) {
	if N == 0 {
		return []float64{-(alpha - beta) / (alpha + beta + 2.)}, []float64{2.}
	}

	h1 := make([]float64, N+1)
	for i := range h1 {
		h1[i] = 2*float64(i) + alpha + beta
	}

	// symmetric tridiagonal Golub-Welsch matrix
	JJ := mat.NewSymDense(N+1, nil)
	fac := beta*beta - alpha*alpha
	for i := 0; i <= N; i++ {
		JJ.SetSym(i, i, fac/(h1[i]*(h1[i]+2.)))
	}
	if alpha+beta < 10*1.e-16 {
		JJ.SetSym(0, 0, 0)
	}
	for i := 0; i < N; i++ {
		ip1 := float64(i + 1)
		JJ.SetSym(i, i+1, 2.0/(h1[i]+2.0)*math.Sqrt(
			ip1*(ip1+alpha+beta)*(ip1+alpha)*(ip1+beta)/(h1[i]+1)/(h1[i]+3)))
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	X = eig.Values(nil)

	VVr := mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(VVr)
	W = make([]float64, N+1)
	g0 := Gamma0(alpha, beta)
	for i := range W {
		v := VVr.At(0, i)
		W[i] = v * v * g0
	}
	return X, W
}

// JacobiGL computes the N+1 Gauss-Lobatto points, the zeros of
// (1-x^2) P'_N^(alpha,beta)(x)
func JacobiGL(alpha, beta float64, N int) []float64 {
	switch N {
	case 0:
		return []float64{0.0}
	case 1:
		return []float64{-1.0, 1.0}
	}
	xint, _ := JacobiGQ(alpha+1, beta+1, N-2)
	x := make([]float64, N+1)
	x[0] = -1.0
	copy(x[1:N], xint)
	x[N] = 1.0
	return x
}

func Gamma0(alpha, beta float64) float64 {
	ab1 := alpha + beta + 1.
	return math.Gamma(alpha+1.) * math.Gamma(beta+1.) * math.Pow(2, ab1) / ab1 / math.Gamma(ab1)
}

func Gamma1(alpha, beta float64) float64 {
	return (alpha + 1.) * (beta + 1.) * Gamma0(alpha, beta) / (alpha + beta + 3.0)
}

// Vandermonde1D builds V(i,j) = P_j(r_i) for the orthonormal Legendre basis
func Vandermonde1D(N int, r []float64) *mat.Dense {
	V := mat.NewDense(len(r), N+1, nil)
	for j := 0; j <= N; j++ {
		V.SetCol(j, JacobiP(r, 0, 0, j))
	}
	return V
}

// GradVandermonde1D builds Vr(i,j) = P_j'(r_i)
func GradVandermonde1D(N int, r []float64) *mat.Dense {
	Vr := mat.NewDense(len(r), N+1, nil)
	for j := 0; j <= N; j++ {
		Vr.SetCol(j, GradJacobiP(r, 0, 0, j))
	}
	return Vr
}

// LineElement is the order N nodal line element on [-1,1] with Legendre
// Gauss-Lobatto nodes
type LineElement struct {
	N, Np int
	R     []float64

	V, Vinv, M, Minv, Dr, LIFT *mat.Dense
}

var _ ReferenceElement = (*LineElement)(nil)

func NewLineElement(N int) (le *LineElement, err error) {
	if N < 1 {
		return nil, fmt.Errorf("line element order must be at least 1, got %d", N)
	}
	le = &LineElement{
		N:  N,
		Np: N + 1,
		R:  JacobiGL(0, 0, N),
	}
	le.V = Vandermonde1D(N, le.R)

	le.Vinv = mat.NewDense(le.Np, le.Np, nil)
	if err = le.Vinv.Inverse(le.V); err != nil {
		return nil, fmt.Errorf("inverting Vandermonde: %w", err)
	}

	// M^-1 = V V^T
	le.Minv = mat.NewDense(le.Np, le.Np, nil)
	le.Minv.Mul(le.V, le.V.T())
	le.M = mat.NewDense(le.Np, le.Np, nil)
	le.M.Mul(le.Vinv.T(), le.Vinv)

	le.Dr = mat.NewDense(le.Np, le.Np, nil)
	le.Dr.Mul(GradVandermonde1D(N, le.R), le.Vinv)

	// LIFT = V V^T E, E picks the two end nodes
	Emat := mat.NewDense(le.Np, 2, nil)
	Emat.Set(0, 0, 1)
	Emat.Set(le.Np-1, 1, 1)
	le.LIFT = mat.NewDense(le.Np, 2, nil)
	le.LIFT.Mul(le.Minv, Emat)
	return le, nil
}

func (le *LineElement) GetProperties() ElementProperties {
	return ElementProperties{
		Name:       fmt.Sprintf("Lagrange Line Order %d", le.N),
		ShortName:  fmt.Sprintf("Line%d", le.N),
		Type:       Line,
		Order:      le.N,
		Np:         le.Np,
		NFp:        1,
		NFaces:     2,
		Dimensions: D1,
	}
}

func (le *LineElement) GetNodes() []float64 { return le.R }

func (le *LineElement) GetNodalModal() NodalModalMatrices {
	return NodalModalMatrices{V: le.V, Vinv: le.Vinv, M: le.M, Minv: le.Minv}
}

func (le *LineElement) GetReferenceOperators() ReferenceOperators {
	return ReferenceOperators{Dr: le.Dr, LIFT: le.LIFT}
}
