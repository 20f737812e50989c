package operator

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/notargets/DGElwise/partitions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// countingApplicator stands in for an accelerator
type countingApplicator struct {
	Generic
	applied int
}

func (ca *countingApplicator) ApplyScaled(p partitions.Partition, scale []float64, m mat.Matrix, t Target) error {
	ca.applied++
	return ca.Generic.ApplyScaled(p, scale, m, t)
}

func TestDispatcher_Select(t *testing.T) {
	var (
		buf    bytes.Buffer
		logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		u      = partitions.NewUniform(0, 2, 2)
		nu     = partitions.NewNonuniform()
		vt     = NewVectorTarget(make([]float64, 4), make([]float64, 4))
		rt     = newRecordingTarget()
	)

	d := NewDispatcher(Config{Logger: logger})
	assert.IsType(t, Batched{}, d.Select(u, vt))
	assert.IsType(t, Generic{}, d.Select(nu, vt))
	assert.IsType(t, Generic{}, d.Select(u, rt))
	assert.Contains(t, buf.String(), "batched path")
	assert.Contains(t, buf.String(), "generic path")

	off := NewDispatcher(Config{DisableFastPath: true, Logger: logger})
	assert.IsType(t, Generic{}, off.Select(u, vt))
}

func TestDispatcher_Accelerator(t *testing.T) {
	acc := &countingApplicator{}
	d := NewDispatcher(Config{Accelerator: acc})

	u := partitions.NewUniform(0, 2, 3)
	result := make([]float64, 6)
	vt := NewVectorTarget([]float64{1, 1, 1, 1, 1, 1}, result)
	require.NoError(t, d.ApplyScaled(u, []float64{1, 2, 3}, identity(2), vt))
	assert.Equal(t, 1, acc.applied)
	assert.Equal(t, []float64{1, 1, 2, 2, 3, 3}, result)

	// non-uniform work never reaches the accelerator
	nu := partitions.NewNonuniform()
	nu.AppendRange(0, 2)
	require.NoError(t, d.ApplyScaled(nu, []float64{1}, identity(2), vt))
	assert.Equal(t, 1, acc.applied)
}

func TestDispatcher_Apply(t *testing.T) {
	d := NewDispatcher(Config{})
	nu := partitions.NewNonuniform()
	nu.AppendRange(0, 2)
	nu.AppendRange(3, 5)
	result := make([]float64, 5)
	vt := NewVectorTarget([]float64{1, 2, 7, 3, 4}, result)

	require.NoError(t, d.Apply(nu, mat.NewDense(2, 2, []float64{0, 1, 1, 0}), vt))
	assert.Equal(t, []float64{2, 1, 0, 4, 3}, result)
}
