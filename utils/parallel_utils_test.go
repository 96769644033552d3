package utils

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPartitionMap(t *testing.T) {
	{ // Test bucket balance
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.Partitions[np][1] - pm.Partitions[np][0]
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 7)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Test buckets are contiguous and cover the range
		for maxIndex := 10; maxIndex < 300; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			assert.Equal(t, 0, pm.Partitions[0][0])
			for np := 1; np < pm.ParallelDegree; np++ {
				assert.Equal(t, pm.Partitions[np-1][1], pm.Partitions[np][0])
			}
			assert.Equal(t, maxIndex, pm.Partitions[pm.ParallelDegree-1][1])
		}
	}
	{ // Test prefix-offset table
		pm := NewPartitionMap(4, 10)
		crs := pm.CRS()
		if diff := cmp.Diff([]int{0, 3, 6, 8, 10}, crs); diff != "" {
			t.Errorf("CRS mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 4, NumChunks(crs))
		assert.NotPanics(t, func() { CheckCRS("zone", crs, 10) })
	}
}

func TestCheckCRS(t *testing.T) {
	assert.Panics(t, func() { CheckCRS("pt", []int{0}, 0) })
	assert.Panics(t, func() { CheckCRS("pt", []int{1, 5}, 5) })
	assert.Panics(t, func() { CheckCRS("pt", []int{0, 4}, 5) })
	assert.Panics(t, func() { CheckCRS("pt", []int{0, 3, 3, 5}, 5) })
	assert.Panics(t, func() { CheckCRS("pt", []int{0, 4, 2, 5}, 5) })
	assert.NotPanics(t, func() { CheckCRS("pt", []int{0, 1, 5}, 5) })
}

func TestRunChunks(t *testing.T) {
	{ // Every index is visited exactly once
		var (
			crs    = NewPartitionMap(6, 1000).CRS()
			visits = make([]int32, 1000)
		)
		RunChunks(crs, func(chunk, first, last int) {
			for i := first; i < last; i++ {
				atomic.AddInt32(&visits[i], 1)
			}
		})
		for i := range visits {
			assert.Equal(t, int32(1), visits[i])
		}
	}
	{ // Reductions fold in chunk order
		crs := NewPartitionMap(5, 100).CRS()
		sum := ReduceChunks(crs, 0, func(chunk, first, last int) (s int) {
			for i := first; i < last; i++ {
				s += i
			}
			return
		}, func(a, b int) int { return a + b })
		assert.Equal(t, 4950, sum)
		order := ReduceChunks(crs, []int{}, func(chunk, first, last int) []int {
			return []int{chunk}
		}, func(a, b []int) []int { return append(a, b...) })
		assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	}
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, r2.Vec{X: -2, Y: 1}, RotateCCW(r2.Vec{X: 1, Y: 2}))
	assert.Equal(t, r2.Vec{X: 0, Y: 3}, Project(r2.Vec{X: 5, Y: 3}, r2.Vec{X: 1}))
	a, b := r2.Vec{X: 0.1, Y: 0.7}, r2.Vec{X: 0.3, Y: -0.2}
	assert.Equal(t, Midpoint(a, b), Midpoint(b, a))
	assert.Equal(t, 0.5, RoundTo(0.5000000000000004, 1.e12))
}
