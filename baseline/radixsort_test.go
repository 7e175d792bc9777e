package baseline

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sort"
	"testing"
)

func TestRadixSort_Empty(t *testing.T) {
	var data []int
	RadixSort(data)
	if len(data) != 0 {
		t.Error("empty slice should remain empty")
	}
}

func TestRadixSort_Reversed(t *testing.T) {
	data := []int{5, 4, 3, 2, 1}
	RadixSort(data)
	expected := []int{1, 2, 3, 4, 5}
	if !slices.Equal(data, expected) {
		t.Errorf("expected %v, got %v", expected, data)
	}
}

func TestRadixSort_ExtremeValues(t *testing.T) {
	data := make([]int, 0, 100)
	for i := 0; i < 20; i++ {
		data = append(data, math.MaxInt, math.MinInt, 0, -1, 1)
	}
	expected := slices.Clone(data)
	slices.Sort(expected)
	RadixSort(data)
	if !slices.Equal(data, expected) {
		t.Errorf("extreme values not sorted: %v", data)
	}
}

func TestRadixSort_AllSame(t *testing.T) {
	data := make([]int, 1000)
	for i := range data {
		data[i] = 7
	}
	RadixSort(data)
	for _, v := range data {
		if v != 7 {
			t.Fatalf("expected 7, got %d", v)
		}
	}
}

func TestRadixSort_MatchesStdSort(t *testing.T) {
	sizes := []int{65, 1000, 50000}
	for _, size := range sizes {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			rng := rand.New(rand.NewSource(123))
			data1 := make([]int, size)
			data2 := make([]int, size)
			for i := range data1 {
				v := rng.Intn(2000000) - 1000000
				data1[i] = v
				data2[i] = v
			}

			RadixSort(data1)
			sort.Ints(data2)

			for i := range data1 {
				if data1[i] != data2[i] {
					t.Fatalf("mismatch at index %d: radix=%d, std=%d", i, data1[i], data2[i])
				}
			}
		})
	}
}

func TestRadixSort_SmallSlices(t *testing.T) {
	// Test sizes 2 through 64 (insertion sort boundary)
	for size := 2; size <= 64; size++ {
		rng := rand.New(rand.NewSource(int64(size)))
		data := make([]int, size)
		for i := range data {
			data[i] = rng.Int() - rng.Int()
		}
		RadixSort(data)
		if !slices.IsSorted(data) {
			t.Fatalf("size %d: not sorted", size)
		}
	}
}
