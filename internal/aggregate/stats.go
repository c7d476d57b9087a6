package aggregate

import (
	"math"
	"sort"

	"github.com/rbastos/kdpipe/internal/model"
)

// Describe summarizes a Kd series. Returns nil for an empty series rather
// than a row of zeros, so reports can omit the section.
func Describe(values []float64) *model.DescriptiveStats {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	return &model.DescriptiveStats{
		Count:  len(sorted),
		Mean:   mean,
		Median: Quantile(sorted, 0.5),
		StdDev: sampleStdDev(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     Quantile(sorted, 0.25),
		Q3:     Quantile(sorted, 0.75),
	}
}

// Quantile computes the q-quantile of an ascending-sorted series using
// linear interpolation between closest ranks, matching the convention the
// study's statistical tooling used.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// sampleStdDev is the n-1 denominator standard deviation; zero for series
// shorter than two
func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
