// Package baseline holds the reference sorts the benchmark harness compares
// timsort against.
package baseline

// QuickSort sorts data in place with a recursive partition-exchange sort.
//
// The pivot is the last element and partitioning is one Lomuto pass, so the
// sort is not stable and degrades to O(n^2) comparisons (and O(n) recursion
// depth) on sorted, reversed or constant input.
func QuickSort[T any](data []T, less func(a, b T) bool) {
	if len(data) < 2 {
		return
	}

	last := len(data) - 1
	pivot := data[last]
	i := 0
	for j := 0; j < last; j++ {
		if less(data[j], pivot) {
			data[i], data[j] = data[j], data[i]
			i++
		}
	}
	data[i], data[last] = data[last], data[i]

	QuickSort(data[:i], less)
	QuickSort(data[i+1:], less)
}
