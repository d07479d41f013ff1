package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 3.0, Mean([]float64{1, 2, 3, 4, 5}), 1e-9)
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{42}))
	// Sample std dev of {2,4,4,4,5,5,7,9} is ~2.138
	assert.InDelta(t, 2.138, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 0.001)
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 3.0, Median([]float64{5, 1, 3, 2, 4}), 1e-9)
	assert.InDelta(t, 2.5, Median([]float64{4, 1, 3, 2}), 1e-9)
}

func TestPercentile(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.InDelta(t, 1.0, Percentile(data, 0), 1e-9)
	assert.InDelta(t, 10.0, Percentile(data, 100), 1e-9)
	assert.InDelta(t, 5.5, Percentile(data, 50), 1e-9)
	assert.InDelta(t, 1.45, Percentile(data, 5), 1e-9)

	// Input must not be reordered
	shuffled := []float64{3, 1, 2}
	Percentile(shuffled, 50)
	assert.Equal(t, []float64{3, 1, 2}, shuffled)
}

func TestPercentiles_MatchesSingle(t *testing.T) {
	data := []float64{12, 7, 3, 41, 18, 9, 27}
	ps := Percentiles(data, []float64{5, 50, 95})
	for _, p := range []float64{5, 50, 95} {
		assert.InDelta(t, Percentile(data, p), ps[p], 1e-9)
	}
}

func TestFractionAbove(t *testing.T) {
	assert.Equal(t, 0.0, FractionAbove(nil, 0))
	assert.InDelta(t, 0.6, FractionAbove([]float64{-2, -1, 1, 2, 3}, 0), 1e-9)
	// Strictly greater: the threshold itself does not count
	assert.InDelta(t, 0.5, FractionAbove([]float64{1, 1, 2, 2}, 1), 1e-9)
}
