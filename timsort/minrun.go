package timsort

// MinMerge is the input length below which the whole input becomes a single
// run and no merging takes place.
const MinMerge = 32

// MinRunLength returns the minimum run length for an input of n elements.
//
// n is halved until it drops below MinMerge; if any bit shifted out was set the
// result is rounded up by one. For n < MinMerge the result is n itself, for
// n >= 64 it always lies in [16, 32]. The choice keeps n/minRun close to, and
// not above, a power of two so the final merges stay balanced.
func MinRunLength(n int) int {
	r := 0
	for n >= MinMerge {
		r |= n & 1
		n >>= 1
	}
	return n + r
}
