// Package timsort implements an adaptive, stable merge sort that exploits
// existing order in its input.
//
// The input is scanned left to right for maximal monotonic runs. Descending
// runs are reversed, runs shorter than a size-dependent minimum are extended
// with a binary insertion sort, and the resulting runs are kept on a stack
// whose lengths are held roughly Fibonacci-shaped by merging the top runs
// whenever the balance invariant breaks. When the input is exhausted the
// stack is merged down to a single run.
//
// Merging is a plain linear two-way merge through a scratch buffer sized to
// the left operand; there is no galloping mode.
//
// Sorting is synchronous and allocates only the run stack and the scratch
// buffer, both of which are released when the call returns. The slice must
// not be accessed concurrently while it is being sorted.
package timsort
