package capital

import (
	"github.com/aristath/finsight/pkg/numeric"
)

// ProjectRequest describes one candidate investment project
type ProjectRequest struct {
	ProjectName        string           `json:"project_name"`
	InitialInvestment  numeric.Amount   `json:"initial_investment"`
	ProjectLife        int              `json:"project_life"`
	SalvageValue       numeric.Amount   `json:"salvage_value"`
	DiscountRate       numeric.Amount   `json:"discount_rate"`
	ReinvestmentRate   numeric.Amount   `json:"reinvestment_rate"`
	CashFlows          []numeric.Amount `json:"cash_flows"`
	DepreciationMethod string           `json:"depreciation_method"`
}

// CalculateRequest is the payload for POST /api/capital-budgeting/calculate
type CalculateRequest struct {
	ProjectRequest
	CompanyID *int64 `json:"company_id"`
	Analyze   bool   `json:"analyze"`
}

// CompareRequest is the payload for POST /api/capital-budgeting/compare
type CompareRequest struct {
	CompanyID *int64           `json:"company_id"`
	Projects  []ProjectRequest `json:"projects"`
	Analyze   bool             `json:"analyze"`
}

// Inputs are the resolved numeric project assumptions. Salvage value is
// already folded into the final period's cash flow.
type Inputs struct {
	Name              string
	InitialInvestment float64
	CashFlows         []float64
	DiscountRate      float64
	ReinvestmentRate  float64
}

// Project echoes the evaluated project assumptions
type Project struct {
	Name               string  `json:"name"`
	InitialInvestment  float64 `json:"initialInvestment"`
	ProjectLife        int     `json:"projectLife"`
	SalvageValue       float64 `json:"salvageValue"`
	DiscountRate       float64 `json:"discountRate"`
	ReinvestmentRate   float64 `json:"reinvestmentRate"`
	DepreciationMethod string  `json:"depreciationMethod,omitempty"`
}

// Decision is the accept/reject verdict
type Decision struct {
	Accept         bool   `json:"accept"`
	Recommendation string `json:"recommendation"`
}

// Metrics holds the full capital-budgeting metric set
type Metrics struct {
	NPV                numeric.Metric `json:"npv"`
	IRR                numeric.Metric `json:"irr"`
	MIRR               numeric.Metric `json:"mirr"`
	PaybackPeriod      numeric.Metric `json:"paybackPeriod"`
	DiscountedPayback  numeric.Metric `json:"discountedPayback"`
	ProfitabilityIndex numeric.Metric `json:"profitabilityIndex"`
	EAA                numeric.Metric `json:"eaa"`
	Decision           Decision       `json:"decision"`
}

// CashFlowRow is one period of the auditable cash-flow table
type CashFlowRow struct {
	Period               int     `json:"period"`
	CashFlow             float64 `json:"cashFlow"`
	DiscountFactor       float64 `json:"discountFactor"`
	PresentValue         float64 `json:"presentValue"`
	Cumulative           float64 `json:"cumulative"`
	CumulativeDiscounted float64 `json:"cumulativeDiscounted"`
}

// Result is the full project evaluation
type Result struct {
	Project          Project       `json:"project"`
	Metrics          Metrics       `json:"metrics"`
	CashFlowAnalysis []CashFlowRow `json:"cashFlowAnalysis"`
	Flags            []string      `json:"flags,omitempty"`
}

// RankedProject is one entry of the comparison ranking
type RankedProject struct {
	Name  string         `json:"name"`
	Rank  int            `json:"rank"`
	Score numeric.Metric `json:"score"`
}

// CompareResult is the multi-project comparison output
type CompareResult struct {
	Projects []Result        `json:"projects"`
	Ranking  []RankedProject `json:"ranking"`
}

func (p ProjectRequest) inputs() Inputs {
	cashFlows := make([]float64, len(p.CashFlows))
	for i, cf := range p.CashFlows {
		cashFlows[i] = cf.Float64()
	}
	if salvage := p.SalvageValue.Float64(); salvage != 0 && len(cashFlows) > 0 {
		cashFlows[len(cashFlows)-1] += salvage
	}

	reinvestment := p.ReinvestmentRate.Float64()
	if !p.ReinvestmentRate.IsSet() {
		reinvestment = p.DiscountRate.Float64()
	}

	return Inputs{
		Name:              p.ProjectName,
		InitialInvestment: p.InitialInvestment.Float64(),
		CashFlows:         cashFlows,
		DiscountRate:      p.DiscountRate.Float64(),
		ReinvestmentRate:  reinvestment,
	}
}

func (p ProjectRequest) project() Project {
	return Project{
		Name:               p.ProjectName,
		InitialInvestment:  p.InitialInvestment.Float64(),
		ProjectLife:        len(p.CashFlows),
		SalvageValue:       p.SalvageValue.Float64(),
		DiscountRate:       p.DiscountRate.Float64(),
		ReinvestmentRate:   p.inputs().ReinvestmentRate,
		DepreciationMethod: p.DepreciationMethod,
	}
}
