package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Variance calculates the variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// Median returns the 50th percentile of the data.
func Median(data []float64) float64 {
	return Percentile(data, 50)
}

// Percentile returns the p-th percentile (0-100) of the data using linear
// interpolation between order statistics. The input is not modified.
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

// Percentiles computes multiple percentiles with a single sort.
func Percentiles(data []float64, ps []float64) map[float64]float64 {
	result := make(map[float64]float64, len(ps))
	if len(data) == 0 {
		for _, p := range ps {
			result[p] = 0
		}
		return result
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	for _, p := range ps {
		result[p] = percentileSorted(sorted, p)
	}
	return result
}

func percentileSorted(sorted []float64, p float64) float64 {
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// FractionAbove returns the fraction of samples strictly greater than the
// threshold.
func FractionAbove(data []float64, threshold float64) float64 {
	if len(data) == 0 {
		return 0
	}
	count := 0
	for _, v := range data {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(data))
}
