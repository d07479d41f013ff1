package montecarlo

import (
	"fmt"

	"github.com/aristath/finsight/pkg/numeric"
)

// Variable names accepted in the request.
const (
	VarRevenueGrowth = "revenue_growth"
	VarCostRatio     = "cost_ratio"
	VarOpexGrowth    = "operating_expense_growth"
	VarDiscountRate  = "discount_rate"
)

// VariableSpec is the request shape of one modeled variable
type VariableSpec struct {
	Mean numeric.Amount `json:"mean"`
	Std  numeric.Amount `json:"std"`
	Min  numeric.Amount `json:"min"`
	Max  numeric.Amount `json:"max"`
}

// RunRequest is the payload for POST /api/monte-carlo/run
type RunRequest struct {
	CompanyID             *int64                  `json:"company_id"`
	NumSimulations        int                     `json:"num_simulations"`
	ProjectionYears       int                     `json:"projection_years"`
	Seed                  *int64                  `json:"seed"`
	BaseRevenue           numeric.Amount          `json:"base_revenue"`
	BaseOperatingExpenses numeric.Amount          `json:"base_operating_expenses"`
	InitialInvestment     numeric.Amount          `json:"initial_investment"`
	TaxRate               numeric.Amount          `json:"tax_rate"`
	Variables             map[string]VariableSpec `json:"variables"`
	Analyze               bool                    `json:"analyze"`
}

// Distribution is a bounded-normal sampling spec
type Distribution struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Validate checks the distribution invariants
func (d Distribution) Validate(name string) error {
	if d.Std < 0 {
		return fmt.Errorf("%s: std must be >= 0", name)
	}
	if d.Min > d.Max {
		return fmt.Errorf("%s: min must be <= max", name)
	}
	if d.Mean < d.Min || d.Mean > d.Max {
		return fmt.Errorf("%s: mean must lie within [min, max]", name)
	}
	return nil
}

// Inputs are the resolved simulation assumptions
type Inputs struct {
	NumSimulations    int
	ProjectionYears   int
	Seed              int64
	BaseRevenue       float64
	BaseOpex          float64
	InitialInvestment float64
	TaxRate           float64
	RevenueGrowth     Distribution
	CostRatio         Distribution
	OpexGrowth        Distribution
	DiscountRate      Distribution
}

// Stats describes one sample distribution
type Stats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// PercentileSet is the fixed percentile grid reported for each sample set
type PercentileSet struct {
	P5  float64 `json:"p5"`
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
}

// RiskMetrics are the downside measures
type RiskMetrics struct {
	// VaR95 is the 5th percentile of the NPV distribution: 95% of outcomes
	// are better than this value.
	VaR95             float64 `json:"var95"`
	NetIncomeVaR95    float64 `json:"netIncomeVar95"`
	DownsideDeviation float64 `json:"downsideDeviation"`
}

// Probabilities are the favorable-outcome frequencies
type Probabilities struct {
	ProfitProbability      float64 `json:"profitProbability"`
	PositiveNPVProbability float64 `json:"positiveNPVProbability"`
}

// Summary is the aggregated simulation output. Raw trial samples are
// discarded after aggregation.
type Summary struct {
	Statistics    map[string]Stats         `json:"statistics"`
	Percentiles   map[string]PercentileSet `json:"percentiles"`
	RiskMetrics   RiskMetrics              `json:"riskMetrics"`
	Probabilities Probabilities            `json:"probabilities"`
}

// SimulationInfo echoes the run parameters
type SimulationInfo struct {
	NumSimulations  int                     `json:"numSimulations"`
	ProjectionYears int                     `json:"projectionYears"`
	Seed            int64                   `json:"seed"`
	Variables       map[string]Distribution `json:"variables"`
}

// Result is the full simulation response body
type Result struct {
	Simulation SimulationInfo `json:"simulation"`
	Summary    Summary        `json:"summary"`
	Flags      []string       `json:"flags,omitempty"`
}

func (v VariableSpec) distribution() Distribution {
	return Distribution{
		Mean: v.Mean.Float64(),
		Std:  v.Std.Float64(),
		Min:  v.Min.Float64(),
		Max:  v.Max.Float64(),
	}
}
