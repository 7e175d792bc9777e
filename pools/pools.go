package pools

import "sync"

// IntSlices pools the working copies the benchmark harness sorts. Slices are
// stored by pointer so Put does not allocate.
var IntSlices = sync.Pool{
	New: func() interface{} {
		slice := make([]int, 0, 1024)
		return &slice
	},
}

// GetInts returns a pooled slice holding a copy of src.
func GetInts(src []int) *[]int {
	p := IntSlices.Get().(*[]int)
	if cap(*p) < len(src) {
		*p = make([]int, len(src))
	}
	*p = (*p)[:len(src)]
	copy(*p, src)
	return p
}

// PutInts returns a slice to the pool.
func PutInts(p *[]int) {
	*p = (*p)[:0]
	IntSlices.Put(p)
}
