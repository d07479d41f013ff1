package dcf

import (
	"github.com/aristath/finsight/pkg/numeric"
)

// CalculateRequest is the payload for POST /api/dcf/calculate
type CalculateRequest struct {
	CompanyID          *int64           `json:"company_id"`
	UseCompanyData     bool             `json:"use_company_data"`
	InitialFCF         numeric.Amount   `json:"initial_fcf"`
	ProjectionYears    int              `json:"projection_years"`
	GrowthRates        []numeric.Amount `json:"growth_rates"`
	RiskFreeRate       numeric.Amount   `json:"risk_free_rate"`
	MarketRiskPremium  numeric.Amount   `json:"market_risk_premium"`
	Beta               numeric.Amount   `json:"beta"`
	CostOfDebt         numeric.Amount   `json:"cost_of_debt"`
	TaxRate            numeric.Amount   `json:"tax_rate"`
	DebtWeight         numeric.Amount   `json:"debt_weight"`
	EquityWeight       numeric.Amount   `json:"equity_weight"`
	TerminalGrowthRate numeric.Amount   `json:"terminal_growth_rate"`
	NetDebt            numeric.Amount   `json:"net_debt"`
	Analyze            bool             `json:"analyze"`
}

// Inputs are the resolved numeric DCF assumptions. GrowthRates always has
// one entry per projection year.
type Inputs struct {
	InitialFCF         float64
	GrowthRates        []float64
	RiskFreeRate       float64
	MarketRiskPremium  float64
	Beta               float64
	CostOfDebt         float64
	TaxRate            float64
	DebtWeight         float64
	EquityWeight       float64
	TerminalGrowthRate float64
	NetDebt            float64
}

// CostOfCapital is the WACC build-up
type CostOfCapital struct {
	CostOfEquity       float64 `json:"costOfEquity"`
	AfterTaxCostOfDebt float64 `json:"afterTaxCostOfDebt"`
	DebtWeight         float64 `json:"debtWeight"`
	EquityWeight       float64 `json:"equityWeight"`
	WACC               float64 `json:"wacc"`
}

// YearRow is one projected year of the audit table
type YearRow struct {
	Year           int     `json:"year"`
	GrowthRate     float64 `json:"growthRate"`
	FCF            float64 `json:"fcf"`
	DiscountFactor float64 `json:"discountFactor"`
	PresentValue   float64 `json:"presentValue"`
}

// Summary holds the headline valuation figures
type Summary struct {
	EnterpriseValue    numeric.Metric `json:"enterpriseValue"`
	EquityValue        numeric.Metric `json:"equityValue"`
	WACC               float64        `json:"wacc"`
	ExplicitPV         float64        `json:"explicitPV"`
	TerminalValue      numeric.Metric `json:"terminalValue"`
	TerminalPV         numeric.Metric `json:"terminalPV"`
	ProjectedCashFlows []YearRow      `json:"projectedCashFlows"`
}

// Valuation echoes the assumptions behind the summary
type Valuation struct {
	InitialFCF         float64       `json:"initialFcf"`
	ProjectionYears    int           `json:"projectionYears"`
	TerminalGrowthRate float64       `json:"terminalGrowthRate"`
	NetDebt            float64       `json:"netDebt"`
	CostOfCapital      CostOfCapital `json:"costOfCapital"`
}

// Result is the full DCF output
type Result struct {
	Valuation Valuation `json:"valuation"`
	Summary   Summary   `json:"summary"`
	Flags     []string  `json:"flags,omitempty"`
}
