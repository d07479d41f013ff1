package breakeven

import (
	"github.com/aristath/finsight/pkg/numeric"
)

// CalculateRequest is the payload for POST /api/break-even/calculate
type CalculateRequest struct {
	CompanyID           *int64         `json:"company_id"`
	FixedCosts          numeric.Amount `json:"fixed_costs"`
	VariableCostPerUnit numeric.Amount `json:"variable_cost_per_unit"`
	SellingPricePerUnit numeric.Amount `json:"selling_price_per_unit"`
	CurrentUnits        numeric.Amount `json:"current_units"`
	TargetProfit        numeric.Amount `json:"target_profit"`
	Analyze             bool           `json:"analyze"`
}

// WhatIfRequest adds percentage deltas for POST /api/break-even/what-if
type WhatIfRequest struct {
	CalculateRequest
	PriceChangePercent        numeric.Amount `json:"price_change_percent"`
	VariableCostChangePercent numeric.Amount `json:"variable_cost_change_percent"`
	FixedCostChangePercent    numeric.Amount `json:"fixed_cost_change_percent"`
}

// Inputs are the resolved numeric CVP assumptions
type Inputs struct {
	FixedCosts          float64
	VariableCostPerUnit float64
	SellingPricePerUnit float64
	CurrentUnits        float64
	TargetProfit        float64
}

// BreakEvenPoint holds the break-even volume and revenue
type BreakEvenPoint struct {
	Units   numeric.Metric `json:"units"`
	Revenue numeric.Metric `json:"revenue"`
}

// TargetProfitPlan holds the volume needed to hit the target profit
type TargetProfitPlan struct {
	Profit  float64        `json:"profit"`
	Units   numeric.Metric `json:"units"`
	Revenue numeric.Metric `json:"revenue"`
}

// Metrics holds the derived CVP metrics
type Metrics struct {
	ContributionMargin      numeric.Metric `json:"contributionMargin"`
	ContributionMarginRatio numeric.Metric `json:"contributionMarginRatio"` // percent
	MarginOfSafetyUnits     numeric.Metric `json:"marginOfSafetyUnits"`
	MarginOfSafety          numeric.Metric `json:"marginOfSafety"` // fraction of current volume
	OperatingLeverage       numeric.Metric `json:"operatingLeverage"`
}

// CurrentPerformance is the P&L at the current volume
type CurrentPerformance struct {
	Units         float64 `json:"units"`
	Revenue       float64 `json:"revenue"`
	VariableCosts float64 `json:"variableCosts"`
	FixedCosts    float64 `json:"fixedCosts"`
	Profit        float64 `json:"profit"`
}

// Result is the full CVP calculation output
type Result struct {
	BreakEven          BreakEvenPoint     `json:"breakEven"`
	TargetProfit       TargetProfitPlan   `json:"targetProfit"`
	Metrics            Metrics            `json:"metrics"`
	CurrentPerformance CurrentPerformance `json:"currentPerformance"`
	Flags              []string           `json:"flags,omitempty"`
}

// Comparison is the what-if output: the baseline, the adjusted scenario, and
// the percentage change per metric (null when the baseline value is 0).
type Comparison struct {
	Current map[string]numeric.Metric `json:"current"`
	WhatIf  map[string]numeric.Metric `json:"whatIf"`
	Change  map[string]numeric.Metric `json:"change"`
}

// WhatIfResult is the response for POST /api/break-even/what-if
type WhatIfResult struct {
	Result
	WhatIfComparison Comparison `json:"whatIfComparison"`
}

func (r CalculateRequest) inputs() Inputs {
	return Inputs{
		FixedCosts:          r.FixedCosts.Float64(),
		VariableCostPerUnit: r.VariableCostPerUnit.Float64(),
		SellingPricePerUnit: r.SellingPricePerUnit.Float64(),
		CurrentUnits:        r.CurrentUnits.Float64(),
		TargetProfit:        r.TargetProfit.Float64(),
	}
}
