package timsort

import "cmp"

// Stats describes the work done by one sort call.
type Stats struct {
	Len          int `json:"len"`
	MinRun       int `json:"min_run"`
	Runs         int `json:"runs"`
	ReversedRuns int `json:"reversed_runs"`
	ForcedRuns   int `json:"forced_runs"`
	Merges       int `json:"merges"`
	MaxStack     int `json:"max_stack"`
	BufferCap    int `json:"buffer_cap"`
}

// Sort sorts data in place into non-decreasing order according to less.
//
// less must be a strict weak ordering. The sort is stable: elements for which
// neither less(a, b) nor less(b, a) holds keep their relative order. To sort a
// subrange [first, last) pass data[first:last].
func Sort[T any](data []T, less func(a, b T) bool) {
	if len(data) < 2 {
		return
	}
	newSorter(data, less).sort()
}

// SortOrdered sorts a slice of ordered values in ascending order.
func SortOrdered[T cmp.Ordered](data []T) {
	Sort(data, cmp.Less[T])
}

// SortWithStats sorts data like Sort and reports what the sort did.
func SortWithStats[T any](data []T, less func(a, b T) bool) Stats {
	if len(data) < 2 {
		return Stats{Len: len(data), MinRun: MinRunLength(len(data))}
	}
	s := newSorter(data, less)
	s.sort()
	return s.stats
}

type sorter[T any] struct {
	data   []T
	less   func(a, b T) bool
	minRun int
	stack  runStack
	buf    *buffer[T]
	stats  Stats

	// onMerge, when set, observes every merge before it is performed.
	onMerge func(left, right run)
}

func newSorter[T any](data []T, less func(a, b T) bool) *sorter[T] {
	minRun := MinRunLength(len(data))
	return &sorter[T]{
		data:   data,
		less:   less,
		minRun: minRun,
		stack:  runStack{runs: make([]run, 0, 64)},
		buf:    newBuffer[T](minRun),
		stats:  Stats{Len: len(data), MinRun: minRun},
	}
}

func (s *sorter[T]) sort() {
	n := len(s.data)
	for start := 0; start < n; {
		r := s.nextRun(start)
		s.stack.push(r)
		s.stats.Runs++
		s.stats.MaxStack = max(s.stats.MaxStack, s.stack.size())

		s.mergeCollapse()
		start = r.end()
	}
	s.mergeForceCollapse()
	s.stats.BufferCap = s.buf.capacity()
}

// nextRun finds the run starting at start and extends it to minRun elements
// (or the rest of the input) when it is shorter.
func (s *sorter[T]) nextRun(start int) run {
	length, reversed := countRunAndMakeAscending(s.data, start, s.less)
	if reversed {
		s.stats.ReversedRuns++
	}

	if length < s.minRun {
		force := min(s.minRun, len(s.data)-start)
		binaryInsertionSort(s.data, start, start+force, s.less)
		length = force
		s.stats.ForcedRuns++
	}
	return run{start: start, length: length}
}

// mergeCollapse merges the top of the stack until the balance invariant holds
// or a single run is left.
func (s *sorter[T]) mergeCollapse() {
	for s.stack.size() > 1 && s.stack.needsMerge() {
		s.mergeTop()
	}
}

// mergeForceCollapse merges all pending runs into one.
func (s *sorter[T]) mergeForceCollapse() {
	for s.stack.size() > 1 {
		s.mergeTop()
	}
}

func (s *sorter[T]) mergeTop() {
	left, right := s.stack.popPair()
	if s.onMerge != nil {
		s.onMerge(left, right)
	}
	mergeRuns(s.data, left.start, right.start, right.end(), s.less, s.buf)
	s.stack.push(run{start: left.start, length: left.length + right.length})
	s.stats.Merges++
}
