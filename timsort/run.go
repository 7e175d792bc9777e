package timsort

import "slices"

// run describes a sorted, contiguous subrange of the data being sorted.
type run struct {
	start  int
	length int
}

func (r run) end() int {
	return r.start + r.length
}

// countRunAndMakeAscending returns the length of the maximal monotonic run
// beginning at start. A strictly descending run is reversed in place so the
// caller always sees a non-decreasing run. Strictness matters: reversing a
// run that contains equal elements would break stability.
func countRunAndMakeAscending[T any](data []T, start int, less func(a, b T) bool) (length int, reversed bool) {
	n := len(data)
	end := start + 1
	if end == n {
		return 1, false
	}

	if less(data[end], data[start]) {
		end++
		for end < n && less(data[end], data[end-1]) {
			end++
		}
		slices.Reverse(data[start:end])
		return end - start, true
	}

	end++
	for end < n && !less(data[end], data[end-1]) {
		end++
	}
	return end - start, false
}
