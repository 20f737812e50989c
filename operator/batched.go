package operator

import (
	"fmt"

	"github.com/notargets/DGElwise/partitions"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Batched applies the local operator to every element of a Uniform partition
// with a single matrix multiply. It needs a BufferTarget.
//
// Layout: the K element blocks of the covered region are read as a row-major
// K x Np matrix B, one element per row, and the result region as the K x Np
// matrix C. The whole partition is then C += B * M^T, which is M applied to
// each element block.
type Batched struct{}

var _ Applicator = Batched{}

func (Batched) Apply(p partitions.Partition, m mat.Matrix, t Target) error {
	u, bt, err := CheckBatched(p, m, t)
	if err != nil || u.Size() == 0 {
		return err
	}
	multiplyBlocks(u, bt.Operand()[u.Start():u.End()], m, bt.Result())
	return nil
}

// ApplyScaled copies each element block of the operand, pre-scaled by its
// factor, into a scratch panel and multiplies the panel once. Every
// precondition is checked before the result buffer is touched.
func (Batched) ApplyScaled(p partitions.Partition, scale []float64, m mat.Matrix, t Target) error {
	u, bt, err := CheckBatched(p, m, t)
	if err != nil || u.Size() == 0 {
		return err
	}
	if len(scale) != u.Size() {
		return fmt.Errorf("%w: %d scale factors for %d elements", ErrOutOfRange, len(scale), u.Size())
	}

	var (
		np      = u.ElementSize()
		operand = bt.Operand()
		scratch = make([]float64, u.Size()*np)
	)
	for i, r := range u.All() {
		floats.ScaleTo(scratch[i*np:(i+1)*np], scale[i], operand[r.Start:r.End])
	}
	multiplyBlocks(u, scratch, m, bt.Result())
	return nil
}

// CanBatch reports whether Batched accepts the partition and target
func CanBatch(p partitions.Partition, t Target) bool {
	_, uniform := p.(*partitions.Uniform)
	_, buffered := t.(BufferTarget)
	return uniform && buffered
}

// CheckBatched validates everything a batched multiply relies on: a Uniform
// partition, a BufferTarget, a square matrix of the element size and buffers
// covering the partition. An empty partition passes once the variant checks
// succeed, whatever m is.
func CheckBatched(p partitions.Partition, m mat.Matrix, t Target) (*partitions.Uniform, BufferTarget, error) {
	u, ok := p.(*partitions.Uniform)
	if !ok {
		return nil, nil, fmt.Errorf("%w: batched path needs a uniform partition, got %T", ErrUnsupported, p)
	}
	bt, ok := t.(BufferTarget)
	if !ok {
		return nil, nil, fmt.Errorf("%w: batched path needs a buffer target, got %T", ErrUnsupported, t)
	}
	if u.Size() == 0 {
		return u, bt, nil
	}
	if err := CheckUniformShape(u, m); err != nil {
		return nil, nil, err
	}
	if u.End() > len(bt.Operand()) {
		return nil, nil, fmt.Errorf("%w: partition ends at %d, operand length %d",
			ErrOutOfRange, u.End(), len(bt.Operand()))
	}
	if u.End() > len(bt.Result()) {
		return nil, nil, fmt.Errorf("%w: partition ends at %d, result length %d",
			ErrOutOfRange, u.End(), len(bt.Result()))
	}
	return u, bt, nil
}

// CheckUniformShape requires a square local matrix matching the element size,
// since each element block is both source and destination
func CheckUniformShape(u *partitions.Uniform, m mat.Matrix) error {
	rows, cols := m.Dims()
	if rows != cols || cols != u.ElementSize() {
		return fmt.Errorf("%w: matrix is %dx%d, element size is %d",
			ErrShapeMismatch, rows, cols, u.ElementSize())
	}
	return nil
}

// multiplyBlocks computes result[covered] += panel * M^T where panel holds the
// partition's element blocks back to back
func multiplyBlocks(u *partitions.Uniform, panel []float64, m mat.Matrix, result []float64) {
	var (
		k  = u.Size()
		np = u.ElementSize()
	)
	b := blas64.General{Rows: k, Cols: np, Stride: np, Data: panel}
	c := blas64.General{Rows: k, Cols: np, Stride: np, Data: result[u.Start():u.End()]}
	blas64.Gemm(blas.NoTrans, blas.Trans, 1, b, rawGeneral(m), 1, c)
}
