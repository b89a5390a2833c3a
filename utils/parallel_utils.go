package utils

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// GetParallelDegree picks the number of worker shards for a given amount of work
func GetParallelDegree(ProcLimit, work int) (NP int) {
	if ProcLimit > 0 {
		NP = ProcLimit
	} else {
		NP = runtime.NumCPU()
	}
	if NP > work {
		NP = work
	}
	if NP < 1 {
		NP = 1
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

// GetBucketDimension is the number of indices in bucket bn
func (pm *PartitionMap) GetBucketDimension(bn int) int {
	kMin, kMax := pm.GetBucketRange(bn)
	return kMax - kMin
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// ParallelFor runs f once per non-empty bucket, each in its own go routine, and
// returns when all buckets are done. f receives [min, max) of its bucket.
func (pm *PartitionMap) ParallelFor(f func(bn, min, max int)) {
	if pm.ParallelDegree == 1 {
		if pm.MaxIndex > 0 {
			f(0, 0, pm.MaxIndex)
		}
		return
	}
	wg := sync.WaitGroup{}
	for np := 0; np < pm.ParallelDegree; np++ {
		if pm.GetBucketDimension(np) == 0 {
			continue
		}
		kMin, kMax := pm.GetBucketRange(np)
		wg.Add(1)
		go func(np, kMin, kMax int) {
			defer wg.Done()
			f(np, kMin, kMax)
		}(np, kMin, kMax)
	}
	wg.Wait()
}

// ParallelMin reduces per-bucket minima; min is exact so the result does not depend on
// the partitioning.
func (pm *PartitionMap) ParallelMin(f func(min, max int) float64) float64 {
	mins := ConstArray(pm.ParallelDegree, math.MaxFloat64)
	pm.ParallelFor(func(bn, min, max int) {
		mins[bn] = f(min, max)
	})
	return floats.Min(mins)
}

// ParallelMax is the max counterpart of ParallelMin
func (pm *PartitionMap) ParallelMax(f func(min, max int) float64) float64 {
	maxs := ConstArray(pm.ParallelDegree, -math.MaxFloat64)
	pm.ParallelFor(func(bn, min, max int) {
		maxs[bn] = f(min, max)
	})
	return floats.Max(maxs)
}
