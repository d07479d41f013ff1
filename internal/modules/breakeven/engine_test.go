package breakeven

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/finsight/pkg/numeric"
)

func metricValue(t *testing.T, m numeric.Metric) float64 {
	t.Helper()
	v, ok := m.Float64()
	require.True(t, ok, "expected a defined metric")
	return v
}

func TestCalculate(t *testing.T) {
	result := Calculate(Inputs{
		FixedCosts:          100000,
		VariableCostPerUnit: 25,
		SellingPricePerUnit: 50,
		CurrentUnits:        5000,
		TargetProfit:        50000,
	})

	assert.Empty(t, result.Flags)
	assert.Equal(t, 25.0, metricValue(t, result.Metrics.ContributionMargin))
	assert.Equal(t, 50.0, metricValue(t, result.Metrics.ContributionMarginRatio))
	assert.Equal(t, 4000.0, metricValue(t, result.BreakEven.Units))
	assert.Equal(t, 200000.0, metricValue(t, result.BreakEven.Revenue))

	// (100000 + 50000) / 25 = 6000 units to reach the target profit
	assert.Equal(t, 6000.0, metricValue(t, result.TargetProfit.Units))
	assert.Equal(t, 300000.0, metricValue(t, result.TargetProfit.Revenue))

	assert.Equal(t, 1000.0, metricValue(t, result.Metrics.MarginOfSafetyUnits))
	assert.Equal(t, 0.2, metricValue(t, result.Metrics.MarginOfSafety))

	// DOL = 125000 / 25000 = 5
	assert.Equal(t, 5.0, metricValue(t, result.Metrics.OperatingLeverage))

	assert.Equal(t, 250000.0, result.CurrentPerformance.Revenue)
	assert.Equal(t, 25000.0, result.CurrentPerformance.Profit)
}

func TestCalculate_NonPositiveMargin(t *testing.T) {
	result := Calculate(Inputs{
		FixedCosts:          100000,
		VariableCostPerUnit: 50,
		SellingPricePerUnit: 40,
		CurrentUnits:        1000,
	})

	assert.Contains(t, result.Flags, numeric.ReasonNonPositiveMargin)
	assert.Equal(t, -10.0, metricValue(t, result.Metrics.ContributionMargin))

	_, ok := result.BreakEven.Units.Float64()
	assert.False(t, ok)
	assert.Equal(t, numeric.ReasonNonPositiveMargin, result.BreakEven.Units.Reason())
	_, ok = result.TargetProfit.Units.Float64()
	assert.False(t, ok)
	_, ok = result.Metrics.OperatingLeverage.Float64()
	assert.False(t, ok)

	// The current P&L is still reported
	assert.Equal(t, -110000.0, result.CurrentPerformance.Profit)
}

func TestCalculate_ZeroCurrentUnits(t *testing.T) {
	result := Calculate(Inputs{
		FixedCosts:          10000,
		VariableCostPerUnit: 10,
		SellingPricePerUnit: 30,
	})

	assert.Equal(t, 500.0, metricValue(t, result.BreakEven.Units))

	_, ok := result.Metrics.MarginOfSafety.Float64()
	assert.False(t, ok)
	assert.Equal(t, numeric.ReasonDivisionByZero, result.Metrics.MarginOfSafety.Reason())
}

func TestWhatIf(t *testing.T) {
	in := Inputs{
		FixedCosts:          100000,
		VariableCostPerUnit: 25,
		SellingPricePerUnit: 50,
		CurrentUnits:        5000,
	}

	current, whatIf, comparison := WhatIf(in, 10, 0, 0)

	// +10% price raises the contribution margin from 25 to 30
	assert.Equal(t, 25.0, metricValue(t, current.Metrics.ContributionMargin))
	assert.Equal(t, 30.0, metricValue(t, whatIf.Metrics.ContributionMargin))

	// Break-even falls from 4000 to 3333.33 units
	assert.InDelta(t, 3333.33, metricValue(t, whatIf.BreakEven.Units), 0.01)

	assert.Equal(t, 20.0, metricValue(t, comparison.Change["contributionMargin"]))
	assert.InDelta(t, -16.67, metricValue(t, comparison.Change["breakEvenUnits"]), 0.01)
}

func TestWhatIf_ChangeUndefinedOnZeroBaseline(t *testing.T) {
	// Exactly at break-even, so baseline profit is zero
	in := Inputs{
		FixedCosts:          100000,
		VariableCostPerUnit: 25,
		SellingPricePerUnit: 50,
		CurrentUnits:        4000,
	}

	_, _, comparison := WhatIf(in, 5, 0, 0)

	change, ok := comparison.Change["profit"].Float64()
	assert.False(t, ok, "percent change from zero profit must be undefined, got %v", change)
	assert.Equal(t, numeric.ReasonDivisionByZero, comparison.Change["profit"].Reason())
}
