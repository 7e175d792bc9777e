// Package datagen produces the synthetic inputs used to compare sorts:
// uniform random values, nearly sorted permutations, many small shuffled
// blocks and fully reversed sequences.
package datagen

import (
	"fmt"
	"math/rand"
)

// Kind names an input shape.
type Kind string

const (
	KindRandom        Kind = "random"
	KindNearlySorted  Kind = "nearly-sorted"
	KindManySmallRuns Kind = "many-small-runs"
	KindReversed      Kind = "reversed"
)

const (
	DefaultMaxValue     = 1000000
	DefaultSwapFraction = 0.01
	DefaultRunSize      = 100
)

// Kinds lists every supported input shape.
func Kinds() []Kind {
	return []Kind{KindRandom, KindNearlySorted, KindManySmallRuns, KindReversed}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown data kind %q (valid: %v)", s, Kinds())
}

// Spec fully determines a generated input.
type Spec struct {
	Kind         Kind
	Size         int
	Seed         int64
	MaxValue     int     // random only
	SwapFraction float64 // nearly-sorted only
	RunSize      int     // many-small-runs only
}

func (s Spec) key() string {
	return fmt.Sprintf("%s/%d/%d/%d/%g/%d", s.Kind, s.Size, s.Seed, s.MaxValue, s.SwapFraction, s.RunSize)
}

// Validate reports whether spec can be generated.
func (s Spec) Validate() error {
	if s.Size < 0 {
		return fmt.Errorf("invalid size %d", s.Size)
	}
	if _, err := ParseKind(string(s.Kind)); err != nil {
		return err
	}
	if s.Kind == KindNearlySorted && (s.SwapFraction < 0 || s.SwapFraction > 1) {
		return fmt.Errorf("swap fraction %g outside [0, 1]", s.SwapFraction)
	}
	return nil
}

// Generate builds the input described by spec. A zero MaxValue or RunSize
// falls back to the package default; a zero SwapFraction means no swaps.
func Generate(spec Spec) ([]int, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec.generate(), nil
}

// generate assumes a validated spec.
func (s Spec) generate() []int {
	rng := rand.New(rand.NewSource(s.Seed))

	switch s.Kind {
	case KindRandom:
		maxValue := s.MaxValue
		if maxValue <= 0 {
			maxValue = DefaultMaxValue
		}
		return Random(s.Size, maxValue, rng)
	case KindNearlySorted:
		return NearlySorted(s.Size, s.SwapFraction, rng)
	case KindManySmallRuns:
		runSize := s.RunSize
		if runSize <= 0 {
			runSize = DefaultRunSize
		}
		return ManySmallRuns(s.Size, runSize, rng)
	default:
		return Reversed(s.Size)
	}
}

// Random returns n values drawn uniformly from [0, maxValue].
func Random(n, maxValue int, rng *rand.Rand) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = rng.Intn(maxValue + 1)
	}
	return data
}

// NearlySorted returns 0..n-1 with n*swapFraction random pairwise swaps.
func NearlySorted(n int, swapFraction float64, rng *rand.Rand) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	if n == 0 {
		return data
	}
	swaps := int(float64(n) * swapFraction)
	for i := 0; i < swaps; i++ {
		a, b := rng.Intn(n), rng.Intn(n)
		data[a], data[b] = data[b], data[a]
	}
	return data
}

// ManySmallRuns returns 0..n-1 cut into consecutive blocks of runSize, each
// block shuffled independently.
func ManySmallRuns(n, runSize int, rng *rand.Rand) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	for start := 0; start < n; start += runSize {
		block := data[start:min(start+runSize, n)]
		rng.Shuffle(len(block), func(i, j int) {
			block[i], block[j] = block[j], block[i]
		})
	}
	return data
}

// Reversed returns n, n-1, ..., 1.
func Reversed(n int) []int {
	data := make([]int, n)
	for i := range data {
		data[i] = n - i
	}
	return data
}
