package analysis

import (
	"math"

	"github.com/teamlens/teamlens/pkg/types"
)

// Summarize computes the shared statistical summary for a sample: average,
// minimum, maximum, and population standard deviation (divide by N). An
// empty sample yields the zero summary. No rounding happens here; display
// precision is applied at the API boundary.
func Summarize(values []float64) types.StatSummary {
	if len(values) == 0 {
		return types.StatSummary{}
	}
	sum := 0.0
	min := values[0]
	max := values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	avg := sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - avg
		variance += d * d
	}
	variance /= float64(len(values))
	return types.StatSummary{
		Avg:   avg,
		Min:   min,
		Max:   max,
		Stdev: math.Sqrt(variance),
		N:     len(values),
	}
}

// SummarizeInts is a convenience wrapper for integer samples.
func SummarizeInts(values []int) types.StatSummary {
	fs := make([]float64, len(values))
	for i, v := range values {
		fs[i] = float64(v)
	}
	return Summarize(fs)
}

// Round2 rounds to two decimal places. Used only by presentation DTOs.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundSummary returns a copy of s with every field rounded for display.
func RoundSummary(s types.StatSummary) types.StatSummary {
	return types.StatSummary{
		Avg:   Round2(s.Avg),
		Min:   Round2(s.Min),
		Max:   Round2(s.Max),
		Stdev: Round2(s.Stdev),
		N:     s.N,
	}
}
