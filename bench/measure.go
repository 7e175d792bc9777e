package bench

import (
	"slices"
	"time"

	"github.com/ChristianF88/runsort/output"
	"github.com/ChristianF88/runsort/pools"
)

// Measurement is the timing of repeated sorts of one input.
type Measurement struct {
	Algorithm  string
	Iterations int
	Avg        time.Duration
	Min        time.Duration
	Max        time.Duration
	Verified   bool
}

// Measure sorts a fresh copy of input iterations times and records the
// elapsed time of each call. The input itself is never modified.
func Measure(algo Algorithm, input []int, iterations int) Measurement {
	reference := slices.Clone(input)
	slices.Sort(reference)
	return measure(algo, input, reference, iterations)
}

func measure(algo Algorithm, input, reference []int, iterations int) Measurement {
	m := Measurement{Algorithm: algo.Name, Iterations: iterations, Verified: true}
	if iterations <= 0 {
		return m
	}

	var total time.Duration
	for i := 0; i < iterations; i++ {
		work := pools.GetInts(input)

		start := time.Now()
		algo.Sort(*work)
		elapsed := time.Since(start)

		if !slices.Equal(*work, reference) {
			m.Verified = false
		}
		pools.PutInts(work)

		total += elapsed
		if i == 0 || elapsed < m.Min {
			m.Min = elapsed
		}
		if elapsed > m.Max {
			m.Max = elapsed
		}
	}
	m.Avg = total / time.Duration(iterations)
	return m
}

func micros(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e3
}

// Result converts the measurement into its report form.
func (m Measurement) Result() output.AlgorithmResult {
	return output.AlgorithmResult{
		Algorithm:  m.Algorithm,
		Iterations: m.Iterations,
		AvgUS:      micros(m.Avg),
		MinUS:      micros(m.Min),
		MaxUS:      micros(m.Max),
		Verified:   m.Verified,
	}
}
