package operator

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Target receives the result of applying a local matrix to a block of the
// global DOF space. Both operations accumulate, they never overwrite.
type Target interface {
	// AddCoefficients adds m applied to the columns [colStart, colEnd) into
	// the rows [rowStart, rowEnd)
	AddCoefficients(rowStart, rowEnd, colStart, colEnd int, m mat.Matrix) error

	// AddScaledCoefficients is AddCoefficients with the contribution
	// multiplied by scale
	AddScaledCoefficients(rowStart, rowEnd, colStart, colEnd int, scale float64, m mat.Matrix) error
}

// BufferTarget is the optional capability of a Target whose operand and
// result are contiguous DOF arrays. The batched paths require it.
type BufferTarget interface {
	Target
	Operand() []float64
	Result() []float64
}

// VectorTarget computes result += M * operand block by block. Operand and
// result must not alias.
type VectorTarget struct {
	operand []float64
	result  []float64
}

var _ BufferTarget = (*VectorTarget)(nil)

func NewVectorTarget(operand, result []float64) *VectorTarget {
	return &VectorTarget{operand: operand, result: result}
}

func (vt *VectorTarget) Operand() []float64 { return vt.operand }
func (vt *VectorTarget) Result() []float64  { return vt.result }

func (vt *VectorTarget) AddCoefficients(rowStart, rowEnd, colStart, colEnd int, m mat.Matrix) error {
	return vt.AddScaledCoefficients(rowStart, rowEnd, colStart, colEnd, 1, m)
}

func (vt *VectorTarget) AddScaledCoefficients(rowStart, rowEnd, colStart, colEnd int,
	scale float64, m mat.Matrix) error {
	if err := checkBlock(rowStart, rowEnd, len(vt.result)); err != nil {
		return fmt.Errorf("result rows: %w", err)
	}
	if err := checkBlock(colStart, colEnd, len(vt.operand)); err != nil {
		return fmt.Errorf("operand columns: %w", err)
	}
	rows, cols := m.Dims()
	if rows != rowEnd-rowStart || cols != colEnd-colStart {
		return fmt.Errorf("%w: matrix is %dx%d, block is %dx%d",
			ErrShapeMismatch, rows, cols, rowEnd-rowStart, colEnd-colStart)
	}

	x := blas64.Vector{N: cols, Inc: 1, Data: vt.operand[colStart:colEnd]}
	y := blas64.Vector{N: rows, Inc: 1, Data: vt.result[rowStart:rowEnd]}
	blas64.Gemv(blas.NoTrans, scale, rawGeneral(m), x, 1, y)
	return nil
}

func checkBlock(start, end, length int) error {
	if start < 0 || start > end || end > length {
		return fmt.Errorf("%w: block [%d,%d) in buffer of length %d", ErrOutOfRange, start, end, length)
	}
	return nil
}

// rawGeneral returns row-major storage for m, copying only when m does not
// expose its own
func rawGeneral(m mat.Matrix) blas64.General {
	if rm, ok := m.(mat.RawMatrixer); ok {
		return rm.RawMatrix()
	}
	return mat.DenseCopyOf(m).RawMatrix()
}
