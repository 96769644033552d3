package utils

import (
	"fmt"
	"sync"
)

// PartitionMap splits the index range [0, MaxIndex) into ParallelDegree
// contiguous buckets with a maximum imbalance of one item.
type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		panic(fmt.Errorf("parallel degree must be positive, have %d", ParallelDegree))
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

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// Splits one dimension into pm.ParallelDegree pieces, the remainder is
	// spread over the first buckets
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 {
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

// CRS returns the bucket boundaries as a prefix-offset table with
// ParallelDegree+1 entries: bucket n covers [crs[n], crs[n+1]).
func (pm *PartitionMap) CRS() (crs []int) {
	crs = make([]int, pm.ParallelDegree+1)
	for n := 0; n < pm.ParallelDegree; n++ {
		crs[n] = pm.Partitions[n][0]
	}
	crs[pm.ParallelDegree] = pm.MaxIndex
	return
}

// CheckCRS panics unless crs is a prefix-offset table of non-empty,
// contiguous chunks that exactly covers [0, maxIndex).
func CheckCRS(label string, crs []int, maxIndex int) {
	var (
		err error
	)
	switch {
	case len(crs) < 2:
		err = fmt.Errorf("%s chunk table needs at least 2 entries, have %d", label, len(crs))
	case crs[0] != 0:
		err = fmt.Errorf("%s chunk table must start at 0, starts at %d", label, crs[0])
	case crs[len(crs)-1] != maxIndex:
		err = fmt.Errorf("%s chunk table must end at %d, ends at %d", label, maxIndex, crs[len(crs)-1])
	}
	if err != nil {
		panic(err)
	}
	for n := 0; n < len(crs)-1; n++ {
		if crs[n+1] <= crs[n] {
			panic(fmt.Errorf("%s chunk %d is empty or overlapping: [%d, %d)", label, n, crs[n], crs[n+1]))
		}
	}
}

// NumChunks is the number of chunks described by a prefix-offset table
func NumChunks(crs []int) int { return len(crs) - 1 }

// RunChunks executes f once per chunk of crs, each in its own goroutine, and
// returns after every chunk has finished.
func RunChunks(crs []int, f func(chunk, first, last int)) {
	var (
		NP = NumChunks(crs)
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			f(np, crs[np], crs[np+1])
			wg.Done()
		}(np)
	}
	wg.Wait()
}

// ReduceChunks runs f on every chunk in parallel, storing each result in a
// slot owned by that chunk, then folds the slots in chunk order with combine.
// The fold order is fixed, so the result does not depend on scheduling.
func ReduceChunks[T any](crs []int, init T, f func(chunk, first, last int) T,
	combine func(a, b T) T) (result T) {
	var (
		partials = make([]T, NumChunks(crs))
	)
	RunChunks(crs, func(chunk, first, last int) {
		partials[chunk] = f(chunk, first, last)
	})
	result = init
	for _, p := range partials {
		result = combine(result, p)
	}
	return
}
