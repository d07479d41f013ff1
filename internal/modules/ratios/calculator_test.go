package ratios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/finsight/pkg/numeric"
)

func f(v float64) *float64 { return &v }

func metricValue(t *testing.T, m numeric.Metric) float64 {
	t.Helper()
	v, ok := m.Float64()
	require.True(t, ok, "expected a defined metric")
	return v
}

func fullInputs() Inputs {
	return Inputs{
		Revenue:             f(2000000),
		COGS:                f(1200000),
		OperatingIncome:     f(400000),
		NetIncome:           f(260000),
		InterestExpense:     f(40000),
		OperatingCashFlow:   f(350000),
		CapitalExpenditures: f(150000),
		CashAndEquivalents:  f(100000),
		AccountsReceivable:  f(250000),
		Inventory:           f(300000),
		CurrentAssets:       f(800000),
		FixedAssets:         f(1000000),
		TotalAssets:         f(2000000),
		AccountsPayable:     f(200000),
		CurrentLiabilities:  f(400000),
		ShortTermDebt:       f(100000),
		LongTermDebt:        f(500000),
		TotalLiabilities:    f(1100000),
		ShareholdersEquity:  f(900000),
	}
}

func TestCalculate(t *testing.T) {
	result := Calculate(fullInputs())

	assert.Equal(t, 2.0, metricValue(t, result.Liquidity.CurrentRatio))
	assert.Equal(t, 1.25, metricValue(t, result.Liquidity.QuickRatio))
	assert.Equal(t, 0.25, metricValue(t, result.Liquidity.CashRatio))
	assert.Equal(t, 400000.0, metricValue(t, result.Liquidity.WorkingCapital))

	// Gross profit derived from revenue − COGS = 800000
	assert.Equal(t, 40.0, metricValue(t, result.Profitability.GrossMargin))
	assert.Equal(t, 20.0, metricValue(t, result.Profitability.OperatingMargin))
	assert.Equal(t, 13.0, metricValue(t, result.Profitability.NetMargin))
	assert.Equal(t, 13.0, metricValue(t, result.Profitability.ROA))
	assert.InDelta(t, 28.89, metricValue(t, result.Profitability.ROE), 0.01)
	assert.Equal(t, 25.0, metricValue(t, result.Profitability.ROCE))

	assert.InDelta(t, 1.22, metricValue(t, result.Leverage.DebtToEquity), 0.01)
	assert.Equal(t, 0.55, metricValue(t, result.Leverage.DebtRatio))
	assert.Equal(t, 0.45, metricValue(t, result.Leverage.EquityRatio))
	assert.Equal(t, 10.0, metricValue(t, result.Leverage.InterestCoverage))
	// Total debt 600000 / (600000 + 900000)
	assert.Equal(t, 0.4, metricValue(t, result.Leverage.DebtToCapital))

	assert.Equal(t, 1.0, metricValue(t, result.Efficiency.AssetTurnover))
	assert.Equal(t, 4.0, metricValue(t, result.Efficiency.InventoryTurnover))
	assert.Equal(t, 8.0, metricValue(t, result.Efficiency.ReceivablesTurnover))
	assert.Equal(t, 6.0, metricValue(t, result.Efficiency.PayablesTurnover))
	assert.Equal(t, 2.0, metricValue(t, result.Efficiency.FixedAssetTurnover))

	assert.InDelta(t, 0.88, metricValue(t, result.CashFlow.OperatingCashFlowRatio), 0.01)
	assert.InDelta(t, 0.58, metricValue(t, result.CashFlow.CashFlowToDebt), 0.01)
	// FCF = 350000 − 150000 = 200000, 10% of revenue
	assert.Equal(t, 10.0, metricValue(t, result.CashFlow.FreeCashFlowYield))
}

func TestCalculate_ExplicitGrossProfitWins(t *testing.T) {
	in := fullInputs()
	in.GrossProfit = f(1000000)

	result := Calculate(in)
	assert.Equal(t, 50.0, metricValue(t, result.Profitability.GrossMargin))
}

func TestCalculate_MissingInputsNullPerRatio(t *testing.T) {
	in := fullInputs()
	in.Inventory = nil
	in.InterestExpense = nil

	result := Calculate(in)

	_, ok := result.Liquidity.QuickRatio.Float64()
	assert.False(t, ok)
	assert.Equal(t, numeric.ReasonMissingInput, result.Liquidity.QuickRatio.Reason())
	_, ok = result.Efficiency.InventoryTurnover.Float64()
	assert.False(t, ok)
	_, ok = result.Leverage.InterestCoverage.Float64()
	assert.False(t, ok)

	// Everything else still computes
	assert.Equal(t, 2.0, metricValue(t, result.Liquidity.CurrentRatio))
	assert.Equal(t, 13.0, metricValue(t, result.Profitability.NetMargin))
}

func TestCalculate_ZeroDenominator(t *testing.T) {
	in := fullInputs()
	in.CurrentLiabilities = f(0)

	result := Calculate(in)

	_, ok := result.Liquidity.CurrentRatio.Float64()
	assert.False(t, ok)
	assert.Equal(t, numeric.ReasonDivisionByZero, result.Liquidity.CurrentRatio.Reason())

	// Working capital is a subtraction, not a division
	assert.Equal(t, 800000.0, metricValue(t, result.Liquidity.WorkingCapital))
}

func TestCalculate_EmptyInputs(t *testing.T) {
	result := Calculate(Inputs{})

	_, ok := result.Liquidity.CurrentRatio.Float64()
	assert.False(t, ok)
	_, ok = result.Profitability.ROE.Float64()
	assert.False(t, ok)
	_, ok = result.CashFlow.FreeCashFlowYield.Float64()
	assert.False(t, ok)
}

func TestCalculate_PartialDebt(t *testing.T) {
	// Only long-term debt reported; total debt falls back to it
	in := fullInputs()
	in.ShortTermDebt = nil

	result := Calculate(in)
	// 500000 / (500000 + 900000)
	assert.InDelta(t, 0.36, metricValue(t, result.Leverage.DebtToCapital), 0.01)
}

func TestLoadBenchmarks(t *testing.T) {
	table, err := LoadBenchmarks()
	require.NoError(t, err)

	bucket, _ := table.ForIndustry("technology")
	assert.Equal(t, "technology", bucket)

	bucket, def := table.ForIndustry("unheard-of-sector")
	assert.Equal(t, "default", bucket)
	fallbackBucket, fallback := table.ForIndustry("")
	assert.Equal(t, "default", fallbackBucket)
	assert.Equal(t, def, fallback)

	assert.Contains(t, table.Industries(), "default")
}
