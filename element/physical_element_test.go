package element

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineMesh(t *testing.T) {
	le, err := NewLineElement(2)
	require.NoError(t, err)

	lm, err := NewLineMesh(le, []float64{0, 1, 3, 3.5})
	require.NoError(t, err)

	assert.Equal(t, 3, lm.K)
	assert.Equal(t, 9, lm.NumDOF())
	assert.InDeltaSlice(t, []float64{0.5, 1, 0.25}, lm.J, 1e-15)
	assert.InDeltaSlice(t, []float64{2, 1, 4}, lm.Rx, 1e-15)

	// LGL nodes of order 2 sit at the ends and the midpoint
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 1, 2, 3, 3, 3.25, 3.5}, lm.X, 1e-14)

	u := lm.Project(func(x float64) float64 { return 2 * x })
	assert.InDelta(t, 6.5, u[7], 1e-14)
}

func TestNewLineMesh_Errors(t *testing.T) {
	le, err := NewLineElement(1)
	require.NoError(t, err)

	_, err = NewLineMesh(le, []float64{1})
	assert.Error(t, err)

	_, err = NewLineMesh(le, []float64{0, 1, 1})
	assert.Error(t, err)

	_, err = NewLineMesh(le, []float64{0, math.NaN()})
	assert.Error(t, err)
}
