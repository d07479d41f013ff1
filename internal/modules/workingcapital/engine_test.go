package workingcapital

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

func testNorms() IndustryNorms {
	return IndustryNorms{DSO: 45, DIO: 60, DPO: 40, CCC: 65}
}

func TestAnalyze(t *testing.T) {
	result := Analyze(Inputs{
		AccountsReceivable: 500000,
		Inventory:          300000,
		AccountsPayable:    200000,
		Revenue:            2000000,
		COGS:               1200000,
	}, "default", testNorms())

	assert.Equal(t, 91.25, metricValue(t, result.Metrics.DSO))
	assert.Equal(t, 91.25, metricValue(t, result.Metrics.DIO))
	assert.Equal(t, 60.83, metricValue(t, result.Metrics.DPO))
	assert.InDelta(t, 121.67, metricValue(t, result.Metrics.CashConversionCycle), 0.01)
	assert.Equal(t, 600000.0, metricValue(t, result.Metrics.WorkingCapital))
	assert.Equal(t, 3.33, metricValue(t, result.Metrics.WorkingCapitalTurnover))
}

func TestAnalyze_BenchmarkStatus(t *testing.T) {
	result := Analyze(Inputs{
		AccountsReceivable: 500000,
		Inventory:          300000,
		AccountsPayable:    200000,
		Revenue:            2000000,
		COGS:               1200000,
	}, "default", testNorms())

	// Lower is better for DSO, DIO and CCC; higher is better for DPO
	assert.Equal(t, "above_average", result.Benchmarks.DSO.Status)
	assert.Equal(t, "above_average", result.Benchmarks.DIO.Status)
	assert.Equal(t, "good", result.Benchmarks.DPO.Status)
	assert.Equal(t, "above_average", result.Benchmarks.CCC.Status)
	assert.Equal(t, "default", result.Benchmarks.Industry)
	assert.Equal(t, 45.0, result.Benchmarks.DSO.Benchmark)
}

func TestAnalyze_NegativeCCCNotClamped(t *testing.T) {
	// Collect fast, pay slow: DSO 18.25, DIO 30.42, DPO 91.25
	result := Analyze(Inputs{
		AccountsReceivable: 100000,
		Inventory:          100000,
		AccountsPayable:    300000,
		Revenue:            2000000,
		COGS:               1200000,
	}, "retail", IndustryNorms{DSO: 10, DIO: 55, DPO: 40, CCC: 25})

	ccc := metricValue(t, result.Metrics.CashConversionCycle)
	assert.InDelta(t, -42.58, ccc, 0.01)
	assert.Equal(t, "good", result.Benchmarks.CCC.Status)
}

func TestAnalyze_ZeroDenominators(t *testing.T) {
	result := Analyze(Inputs{
		AccountsReceivable: 100000,
		Inventory:          50000,
		AccountsPayable:    150000,
	}, "default", testNorms())

	for _, m := range []numeric.Metric{
		result.Metrics.DSO,
		result.Metrics.DIO,
		result.Metrics.DPO,
	} {
		_, ok := m.Float64()
		assert.False(t, ok)
		assert.Equal(t, numeric.ReasonDivisionByZero, m.Reason())
	}

	_, ok := result.Metrics.CashConversionCycle.Float64()
	assert.False(t, ok)
	assert.Equal(t, numeric.ReasonMissingInput, result.Metrics.CashConversionCycle.Reason())

	// Working capital is independent of the flows
	assert.Equal(t, 0.0, metricValue(t, result.Metrics.WorkingCapital))
	_, ok = result.Metrics.WorkingCapitalTurnover.Float64()
	assert.False(t, ok)

	// Undefined metrics get no benchmark verdict
	assert.Equal(t, "not_available", result.Benchmarks.DSO.Status)
	assert.Equal(t, "not_available", result.Benchmarks.DIO.Status)
	assert.Equal(t, "not_available", result.Benchmarks.DPO.Status)
	assert.Equal(t, "not_available", result.Benchmarks.CCC.Status)
}

func TestAnalyze_Optimization(t *testing.T) {
	result := Analyze(Inputs{
		AccountsReceivable: 500000,
		Inventory:          300000,
		AccountsPayable:    200000,
		Revenue:            2000000,
		COGS:               1200000,
	}, "default", testNorms())

	// DSO gap 46.25 days × daily revenue, DIO gap 31.25 days × daily COGS
	assert.InDelta(t, 253424.66, metricValue(t, result.Optimization.ReceivablesPotential), 0.01)
	assert.InDelta(t, 102739.73, metricValue(t, result.Optimization.InventoryPotential), 0.01)
	// DPO already beats the norm, so nothing to release there
	assert.Equal(t, 0.0, metricValue(t, result.Optimization.PayablesPotential))
	assert.InDelta(t, 356164.39, metricValue(t, result.Optimization.TotalPotential), 0.01)
}

func TestLoadNorms(t *testing.T) {
	table, err := LoadNorms()
	require.NoError(t, err)

	bucket, norms := table.ForIndustry("Technology")
	assert.Equal(t, "technology", bucket)
	assert.Greater(t, norms.DSO, 0.0)

	bucket, _ = table.ForIndustry("no-such-industry")
	assert.Equal(t, "default", bucket)
}
