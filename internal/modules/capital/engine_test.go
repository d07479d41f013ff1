package capital

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

func TestEvaluate(t *testing.T) {
	result := Evaluate(Inputs{
		Name:              "Expansion",
		InitialInvestment: 10000,
		CashFlows:         []float64{4000, 4000, 4000},
		DiscountRate:      0.10,
		ReinvestmentRate:  0.10,
	})

	// NPV = -10000 + 4000/1.1 + 4000/1.21 + 4000/1.331
	npv := metricValue(t, result.Metrics.NPV)
	assert.InDelta(t, -52.59, npv, 0.01)

	irr := metricValue(t, result.Metrics.IRR)
	assert.InDelta(t, 0.0970, irr, 0.001)

	payback := metricValue(t, result.Metrics.PaybackPeriod)
	assert.InDelta(t, 2.5, payback, 1e-9)

	pi := metricValue(t, result.Metrics.ProfitabilityIndex)
	assert.InDelta(t, 0.9947, pi, 0.001)

	assert.False(t, result.Metrics.Decision.Accept)
	assert.Contains(t, result.Metrics.Decision.Recommendation, "Reject")
}

func TestEvaluate_ProfitableProject(t *testing.T) {
	result := Evaluate(Inputs{
		Name:              "Profitable",
		InitialInvestment: 10000,
		CashFlows:         []float64{5000, 5000, 5000},
		DiscountRate:      0.10,
		ReinvestmentRate:  0.10,
	})

	npv := metricValue(t, result.Metrics.NPV)
	assert.InDelta(t, 2434.26, npv, 0.01)
	assert.Greater(t, metricValue(t, result.Metrics.IRR), 0.10)
	assert.Greater(t, metricValue(t, result.Metrics.ProfitabilityIndex), 1.0)
	assert.True(t, result.Metrics.Decision.Accept)
	assert.Contains(t, result.Metrics.Decision.Recommendation, "Accept")
}

func TestEvaluate_NoIRRSolution(t *testing.T) {
	result := Evaluate(Inputs{
		Name:              "Sunk",
		InitialInvestment: 10000,
		CashFlows:         []float64{-1000, -2000, -3000},
		DiscountRate:      0.10,
	})

	_, ok := result.Metrics.IRR.Float64()
	assert.False(t, ok)
	assert.Equal(t, numeric.ReasonNoSolutionFound, result.Metrics.IRR.Reason())
	assert.Contains(t, result.Flags, numeric.ReasonNoSolutionFound)

	_, ok = result.Metrics.PaybackPeriod.Float64()
	assert.False(t, ok)

	// NPV still computes, and the project is rejected
	_, ok = result.Metrics.NPV.Float64()
	assert.True(t, ok)
	assert.False(t, result.Metrics.Decision.Accept)
}

func TestEvaluate_CashFlowTable(t *testing.T) {
	result := Evaluate(Inputs{
		InitialInvestment: 1000,
		CashFlows:         []float64{600, 600},
		DiscountRate:      0.10,
	})

	require.Len(t, result.CashFlowAnalysis, 3)

	period0 := result.CashFlowAnalysis[0]
	assert.Equal(t, 0, period0.Period)
	assert.Equal(t, -1000.0, period0.CashFlow)
	assert.Equal(t, 1.0, period0.DiscountFactor)

	period1 := result.CashFlowAnalysis[1]
	assert.Equal(t, 1, period1.Period)
	assert.InDelta(t, 545.45, period1.PresentValue, 0.01)
	assert.InDelta(t, -400.0, period1.Cumulative, 1e-9)

	period2 := result.CashFlowAnalysis[2]
	assert.InDelta(t, 200.0, period2.Cumulative, 1e-9)
	assert.InDelta(t, 41.32, period2.CumulativeDiscounted, 0.01)
}

func TestRank(t *testing.T) {
	a := Evaluate(Inputs{
		Name:              "A",
		InitialInvestment: 10000,
		CashFlows:         []float64{5000, 5000, 5000},
		DiscountRate:      0.10,
	})
	a.Project.Name = "A"
	b := Evaluate(Inputs{
		Name:              "B",
		InitialInvestment: 10000,
		CashFlows:         []float64{6000, 6000, 6000},
		DiscountRate:      0.10,
	})
	b.Project.Name = "B"

	ranking := Rank([]Result{a, b})
	require.Len(t, ranking, 2)
	assert.Equal(t, "B", ranking[0].Name)
	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, "A", ranking[1].Name)
	assert.Equal(t, 2, ranking[1].Rank)
}

func TestRank_TieBreaksOnProfitabilityIndex(t *testing.T) {
	// Same NPV, but the smaller project earns it with less capital
	small := Evaluate(Inputs{
		Name:              "Small",
		InitialInvestment: 1000,
		CashFlows:         []float64{2100},
		DiscountRate:      0.10,
	})
	small.Project.Name = "Small"
	large := Evaluate(Inputs{
		Name:              "Large",
		InitialInvestment: 10000,
		CashFlows:         []float64{12000},
		DiscountRate:      0.10,
	})
	large.Project.Name = "Large"

	npvSmall := metricValue(t, small.Metrics.NPV)
	npvLarge := metricValue(t, large.Metrics.NPV)
	require.InDelta(t, npvSmall, npvLarge, npvTieTolerance)

	ranking := Rank([]Result{large, small})
	assert.Equal(t, "Small", ranking[0].Name)
	assert.Equal(t, "Large", ranking[1].Name)
}
