package timsort

// binaryInsertionSort sorts data[lo:hi] in place.
//
// Each element is lifted out and placed after all elements of the sorted
// prefix that are not greater than it (upper bound), so equal elements keep
// their input order. The displaced block is shifted right with one copy.
func binaryInsertionSort[T any](data []T, lo, hi int, less func(a, b T) bool) {
	for i := lo + 1; i < hi; i++ {
		key := data[i]

		left, right := lo, i
		for left < right {
			mid := int(uint(left+right) >> 1)
			if less(key, data[mid]) {
				right = mid
			} else {
				left = mid + 1
			}
		}

		if left != i {
			copy(data[left+1:i+1], data[left:i])
			data[left] = key
		}
	}
}
