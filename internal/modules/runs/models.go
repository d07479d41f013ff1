package runs

import (
	"encoding/json"
	"time"
)

// Calculation kinds recorded in the run history.
const (
	KindCapitalBudgeting = "capital_budgeting"
	KindCapitalCompare   = "capital_compare"
	KindDCF              = "dcf"
	KindBreakEven        = "break_even"
	KindBreakEvenWhatIf  = "break_even_what_if"
	KindMonteCarlo       = "monte_carlo"
	KindWorkingCapital   = "working_capital"
	KindRatios           = "financial_ratios"
)

// Run is one persisted calculation: the request that produced it and the
// result that was returned. Raw Monte Carlo samples are never stored, only
// the aggregated summary.
type Run struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	CompanyID *int64          `json:"company_id,omitempty"`
	Request   json.RawMessage `json:"request"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
