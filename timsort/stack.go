package timsort

// runStack holds the pending runs. Runs on the stack are adjacent and in
// order: runs[k].end() == runs[k+1].start.
type runStack struct {
	runs []run
}

func (s *runStack) push(r run) {
	s.runs = append(s.runs, r)
}

func (s *runStack) size() int {
	return len(s.runs)
}

// popPair removes the two topmost runs, deeper one first.
func (s *runStack) popPair() (left, right run) {
	n := len(s.runs)
	left, right = s.runs[n-2], s.runs[n-1]
	s.runs = s.runs[:n-2]
	return left, right
}

// needsMerge reports whether the top of the stack violates the balance
// invariant. With A, B, C the three topmost runs (C most recent) a merge is
// due when |A| <= |B| + |C|, or, failing that, when |B| <= |C|.
func (s *runStack) needsMerge() bool {
	n := len(s.runs)
	if n >= 3 {
		a, b, c := s.runs[n-3].length, s.runs[n-2].length, s.runs[n-1].length
		if a <= b+c {
			return true
		}
	}
	if n >= 2 {
		return s.runs[n-2].length <= s.runs[n-1].length
	}
	return false
}
