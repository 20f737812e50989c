package partitions

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniform_Ranges(t *testing.T) {
	cases := []struct {
		start, size, count int
	}{
		{0, 2, 3},
		{7, 4, 5},
		{3, 0, 4},
		{10, 6, 1},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("s=%d,k=%d,n=%d", c.start, c.size, c.count), func(t *testing.T) {
			u := NewUniform(c.start, c.size, c.count)
			require.Equal(t, c.count, u.Size())
			for i := 0; i < c.count; i++ {
				assert.Equal(t, ElementRange{c.start + i*c.size, c.start + (i+1)*c.size}, u.At(i))
			}
			assert.Equal(t, c.start+c.count*c.size, u.End())

			n := 0
			for i, r := range u.All() {
				assert.Equal(t, n, i)
				assert.Equal(t, u.At(i), r)
				n++
			}
			assert.Equal(t, c.count, n)
		})
	}
}

func TestUniform_Empty(t *testing.T) {
	u := NewUniform(5, 3, 0)
	assert.Equal(t, 0, u.Size())
	for range u.All() {
		t.Fatal("empty partition yielded an element")
	}
	assert.True(t, u.Begin().Equal(u.Finish()))
	assert.False(t, u.Begin().Valid())
}

func TestUniform_AtOutOfRange(t *testing.T) {
	u := NewUniform(0, 2, 3)
	assert.Panics(t, func() { u.At(3) })
	assert.Panics(t, func() { u.At(-1) })
	assert.Panics(t, func() { NewUniform(0, -1, 3) })
	assert.Panics(t, func() { NewUniform(0, 1, -3) })
}

func TestUniform_RandomAccessIterator(t *testing.T) {
	u := NewUniform(4, 3, 10)
	begin, end := u.Begin(), u.Finish()

	assert.Equal(t, 10, begin.Distance(end))
	assert.Equal(t, -10, end.Distance(begin))

	it := begin.Advance(7)
	assert.Equal(t, 7, it.Index())
	assert.Equal(t, ElementRange{25, 28}, it.Range())

	it = it.Advance(-5)
	assert.Equal(t, ElementRange{10, 13}, it.Range())
	assert.Equal(t, ElementRange{13, 16}, it.Next().Range())
	assert.Equal(t, ElementRange{7, 10}, it.Prev().Range())

	// a value iterator; advancing a copy leaves the original in place
	_ = it.Advance(3)
	assert.Equal(t, 2, it.Index())

	var visited []ElementRange
	for it := u.Begin(); !it.Equal(u.Finish()); it = it.Next() {
		visited = append(visited, it.Range())
	}
	require.Len(t, visited, 10)
	assert.Equal(t, u.At(9), visited[9])
	assert.False(t, end.Valid())
	assert.True(t, end.Prev().Valid())
}

func TestNonuniform_AppendAndClear(t *testing.T) {
	nu := NewNonuniform()
	nu.AppendRange(0, 3)
	nu.AppendRange(5, 7)

	require.Equal(t, 2, nu.Size())
	assert.Equal(t, ElementRange{5, 7}, nu.At(1))
	assert.Equal(t, 2, nu.At(1).Len())

	var order []ElementRange
	for it := nu.Begin(); it.Valid(); it = it.Next() {
		order = append(order, it.Range())
	}
	assert.Equal(t, []ElementRange{{0, 3}, {5, 7}}, order)

	order = order[:0]
	for _, r := range nu.All() {
		order = append(order, r)
	}
	assert.Equal(t, []ElementRange{{0, 3}, {5, 7}}, order)

	nu.Clear()
	assert.Equal(t, 0, nu.Size())
	assert.False(t, nu.Begin().Valid())

	nu.AppendRange(9, 9)
	assert.Equal(t, 1, nu.Size())
	assert.Equal(t, 0, nu.At(0).Len())
}

func TestNonuniform_InvalidRange(t *testing.T) {
	nu := NewNonuniform()
	assert.Panics(t, func() { nu.AppendRange(4, 2) })
	assert.Panics(t, func() { nu.At(0) })
}

func TestNonuniform_EarlyBreak(t *testing.T) {
	nu := NewNonuniform()
	for i := 0; i < 5; i++ {
		nu.AppendRange(i*2, i*2+2)
	}
	seen := 0
	for i := range nu.All() {
		if i == 2 {
			break
		}
		seen++
	}
	assert.Equal(t, 2, seen)
}

func TestElementRange_String(t *testing.T) {
	assert.Equal(t, "[2,5)", ElementRange{2, 5}.String())
}
