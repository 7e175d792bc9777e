package timsort

// buffer is the scratch space for the left operand of a merge. It lives for
// one sort call, grows on demand and is never shrunk.
type buffer[T any] struct {
	items []T
}

func newBuffer[T any](capacity int) *buffer[T] {
	return &buffer[T]{items: make([]T, 0, capacity)}
}

// take returns a slice of exactly n scratch slots.
func (b *buffer[T]) take(n int) []T {
	if cap(b.items) < n {
		b.items = make([]T, n)
	}
	b.items = b.items[:n]
	return b.items
}

func (b *buffer[T]) capacity() int {
	return cap(b.items)
}

// mergeRuns merges the adjacent sorted ranges data[start:mid] and
// data[mid:end] into data[start:end].
//
// Only the left range is copied out. Writes start at start and can never
// overtake the unread part of the right range, so the right range is merged
// in place. On ties the left element wins, which keeps the merge stable.
func mergeRuns[T any](data []T, start, mid, end int, less func(a, b T) bool, buf *buffer[T]) {
	leftSize := mid - start
	tmp := buf.take(leftSize)
	copy(tmp, data[start:mid])

	i, j, dest := 0, mid, start
	for i < leftSize && j < end {
		if less(data[j], tmp[i]) {
			data[dest] = data[j]
			j++
		} else {
			data[dest] = tmp[i]
			i++
		}
		dest++
	}

	// Right side exhausted first: the rest of the left side goes to the tail.
	// Left side exhausted first: the rest of the right side is already in place.
	if i < leftSize {
		copy(data[dest:end], tmp[i:])
	}

	clear(tmp)
}
