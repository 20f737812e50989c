package partitions

import (
	"fmt"

	"github.com/notargets/gocfd/utils"
)

// Build lays elements out contiguously from DOF index start, element k taking
// nodesPerElement[k] entries. A mesh whose elements all share one node count
// yields a Uniform partition, anything else a Nonuniform one.
func Build(start int, nodesPerElement []int) Partition {
	if len(nodesPerElement) == 0 {
		return NewUniform(start, 0, 0)
	}

	np := nodesPerElement[0]
	uniform := true
	for k, n := range nodesPerElement {
		if n < 0 {
			panic(fmt.Sprintf("element %d: negative node count %d", k, n))
		}
		if n != np {
			uniform = false
		}
	}
	if uniform {
		return NewUniform(start, np, len(nodesPerElement))
	}

	nu := NewNonuniform()
	offset := start
	for _, n := range nodesPerElement {
		nu.AppendRange(offset, offset+n)
		offset += n
	}
	return nu
}

// Shard splits a uniform partition into parallelDegree contiguous uniform
// partitions using the gocfd bucket layout. Buckets are balanced to within one
// element of each other; the shards cover exactly the elements of u.
func Shard(u *Uniform, parallelDegree int) []*Uniform {
	if parallelDegree < 1 {
		panic(fmt.Sprintf("parallel degree must be positive, got %d", parallelDegree))
	}
	if u.Size() == 0 {
		return []*Uniform{NewUniform(u.Start(), u.ElementSize(), 0)}
	}
	if parallelDegree > u.Size() {
		parallelDegree = u.Size()
	}

	pm := utils.NewPartitionMap(parallelDegree, u.Size())
	shards := make([]*Uniform, pm.ParallelDegree)
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		kMin, kMax := pm.GetBucketRange(bn)
		shards[bn] = NewUniform(u.Start()+kMin*u.ElementSize(), u.ElementSize(), kMax-kMin)
	}
	return shards
}
