package baseline

// RadixSort performs an 8-bit LSD radix sort on a slice of ints.
// Keys are the values with the sign bit flipped so negative numbers order
// before positive ones.
//
// Up to 8 passes over the data, one per byte, with counting sort at each pass.
// A pass whose byte is the same for every element is skipped, which makes
// small value ranges cost only a few passes. The scratch buffer is allocated
// once and reused across passes.
func RadixSort(data []int) {
	n := len(data)
	if n <= 1 {
		return
	}

	// For very small slices, insertion sort is faster
	if n <= 64 {
		insertionSortInts(data)
		return
	}

	src := data
	dst := make([]int, n)
	for shift := uint(0); shift < 64; shift += 8 {
		if radixPass(src, dst, shift) {
			src, dst = dst, src
		}
	}

	// An odd number of effective passes leaves the result in the scratch buffer
	if &src[0] != &data[0] {
		copy(data, src)
	}
}

func radixKey(v int) uint64 {
	return uint64(v) ^ (1 << 63)
}

// radixPass performs one pass of counting sort on the byte at shift.
// It returns false, leaving dst untouched, when every key has the same byte.
func radixPass(src, dst []int, shift uint) bool {
	var counts [256]int

	for _, v := range src {
		counts[(radixKey(v)>>shift)&0xFF]++
	}

	// Convert counts to prefix sums (starting positions)
	total := 0
	for i := range counts {
		count := counts[i]
		if count == len(src) {
			return false
		}
		counts[i] = total
		total += count
	}

	for _, v := range src {
		b := (radixKey(v) >> shift) & 0xFF
		dst[counts[b]] = v
		counts[b]++
	}
	return true
}

// insertionSortInts for small slices where radix overhead isn't worthwhile
func insertionSortInts(data []int) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 && data[j] > key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}
