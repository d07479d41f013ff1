package workingcapital

import (
	"github.com/aristath/finsight/pkg/numeric"
)

// AnalyzeRequest is the payload for POST /api/working-capital/analyze
type AnalyzeRequest struct {
	CompanyID          *int64         `json:"company_id"`
	Industry           string         `json:"industry"`
	AccountsReceivable numeric.Amount `json:"accounts_receivable"`
	Inventory          numeric.Amount `json:"inventory"`
	AccountsPayable    numeric.Amount `json:"accounts_payable"`
	Revenue            numeric.Amount `json:"revenue"`
	COGS               numeric.Amount `json:"cogs"`
	Analyze            bool           `json:"analyze"`
}

// Inputs are the resolved working-capital aggregates
type Inputs struct {
	AccountsReceivable float64
	Inventory          float64
	AccountsPayable    float64
	Revenue            float64
	COGS               float64
}

// Metrics holds the cash-conversion-cycle metric set
type Metrics struct {
	DSO                    numeric.Metric `json:"dso"`
	DIO                    numeric.Metric `json:"dio"`
	DPO                    numeric.Metric `json:"dpo"`
	CashConversionCycle    numeric.Metric `json:"cashConversionCycle"`
	WorkingCapital         numeric.Metric `json:"workingCapital"`
	WorkingCapitalTurnover numeric.Metric `json:"workingCapitalTurnover"`
}

// BenchmarkComparison grades one metric against its industry norm
type BenchmarkComparison struct {
	Value     numeric.Metric `json:"value"`
	Benchmark float64        `json:"benchmark"`
	Status    string         `json:"status"` // good | above_average | not_available
}

// Benchmarks holds the per-metric industry comparison
type Benchmarks struct {
	Industry string              `json:"industry"`
	DSO      BenchmarkComparison `json:"dso"`
	DIO      BenchmarkComparison `json:"dio"`
	DPO      BenchmarkComparison `json:"dpo"`
	CCC      BenchmarkComparison `json:"ccc"`
}

// Optimization estimates the cash released by closing the gap to the
// industry benchmark on each cycle component
type Optimization struct {
	ReceivablesPotential numeric.Metric `json:"receivablesPotential"`
	InventoryPotential   numeric.Metric `json:"inventoryPotential"`
	PayablesPotential    numeric.Metric `json:"payablesPotential"`
	TotalPotential       numeric.Metric `json:"totalPotential"`
}

// Result is the full working-capital analysis
type Result struct {
	Metrics      Metrics      `json:"metrics"`
	Benchmarks   Benchmarks   `json:"benchmarks"`
	Optimization Optimization `json:"optimization"`
	Flags        []string     `json:"flags,omitempty"`
}

func (r AnalyzeRequest) inputs() Inputs {
	return Inputs{
		AccountsReceivable: r.AccountsReceivable.Float64(),
		Inventory:          r.Inventory.Float64(),
		AccountsPayable:    r.AccountsPayable.Float64(),
		Revenue:            r.Revenue.Float64(),
		COGS:               r.COGS.Float64(),
	}
}
