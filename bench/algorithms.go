// Package bench times sort implementations over generated inputs.
package bench

import (
	"cmp"
	"fmt"
	"slices"
	"sort"

	"github.com/ChristianF88/runsort/baseline"
	"github.com/ChristianF88/runsort/timsort"
)

// Algorithm is a named in-place sort over ints.
type Algorithm struct {
	Name        string
	Description string
	Stable      bool
	Sort        func([]int)
}

func intLess(a, b int) bool { return a < b }

// Registry lists every algorithm the harness knows, in report order.
func Registry() []Algorithm {
	return []Algorithm{
		{
			Name:        "std",
			Description: "sort.Ints (pattern-defeating quicksort)",
			Sort:        sort.Ints,
		},
		{
			Name:        "stable",
			Description: "slices.SortStableFunc (insertion sort + symmerge)",
			Stable:      true,
			Sort:        func(data []int) { slices.SortStableFunc(data, cmp.Compare[int]) },
		},
		{
			Name:        "timsort",
			Description: "run-aware merge sort",
			Stable:      true,
			Sort:        func(data []int) { timsort.Sort(data, intLess) },
		},
		{
			Name:        "quicksort",
			Description: "recursive Lomuto quicksort, last-element pivot",
			Sort:        func(data []int) { baseline.QuickSort(data, intLess) },
		},
		{
			Name:        "radix",
			Description: "8-bit LSD radix sort",
			Stable:      true,
			Sort:        baseline.RadixSort,
		},
	}
}

// Names returns the names of all registered algorithms.
func Names() []string {
	registry := Registry()
	names := make([]string, len(registry))
	for i, a := range registry {
		names[i] = a.Name
	}
	return names
}

// Lookup resolves algorithm names, preserving the requested order.
func Lookup(names []string) ([]Algorithm, error) {
	registry := Registry()
	algos := make([]Algorithm, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(registry, func(a Algorithm) bool { return a.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown algorithm %q (valid: %v)", name, Names())
		}
		algos = append(algos, registry[i])
	}
	return algos, nil
}
