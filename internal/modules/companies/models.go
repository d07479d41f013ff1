package companies

import (
	"time"

	"github.com/aristath/finsight/pkg/numeric"
)

// Company is one reporting entity
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Industry  *string   `json:"industry"`
	CreatedAt time.Time `json:"created_at"`
}

// StatementData holds the balance-sheet and income-statement aggregates for
// one fiscal year. Every field is optional: the ratio calculator must see
// missing values as missing, never as zero.
type StatementData struct {
	// Income statement
	Revenue             numeric.Amount `json:"revenue"`
	COGS                numeric.Amount `json:"cogs"`
	GrossProfit         numeric.Amount `json:"gross_profit"`
	OperatingIncome     numeric.Amount `json:"operating_income"`
	NetIncome           numeric.Amount `json:"net_income"`
	InterestExpense     numeric.Amount `json:"interest_expense"`
	OperatingCashFlow   numeric.Amount `json:"operating_cash_flow"`
	CapitalExpenditures numeric.Amount `json:"capital_expenditures"`

	// Balance sheet
	CashAndEquivalents numeric.Amount `json:"cash_and_equivalents"`
	AccountsReceivable numeric.Amount `json:"accounts_receivable"`
	Inventory          numeric.Amount `json:"inventory"`
	CurrentAssets      numeric.Amount `json:"current_assets"`
	FixedAssets        numeric.Amount `json:"fixed_assets"`
	TotalAssets        numeric.Amount `json:"total_assets"`
	AccountsPayable    numeric.Amount `json:"accounts_payable"`
	CurrentLiabilities numeric.Amount `json:"current_liabilities"`
	ShortTermDebt      numeric.Amount `json:"short_term_debt"`
	LongTermDebt       numeric.Amount `json:"long_term_debt"`
	TotalLiabilities   numeric.Amount `json:"total_liabilities"`
	ShareholdersEquity numeric.Amount `json:"shareholders_equity"`
}

// Statement is a persisted fiscal-year statement
type Statement struct {
	ID         int64         `json:"id"`
	CompanyID  int64         `json:"company_id"`
	FiscalYear int           `json:"fiscal_year"`
	Data       StatementData `json:"data"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NetDebt returns total debt minus cash, or nil when no debt or cash field
// was reported at all.
func (d StatementData) NetDebt() *float64 {
	if !d.ShortTermDebt.IsSet() && !d.LongTermDebt.IsSet() && !d.CashAndEquivalents.IsSet() {
		return nil
	}
	nd := d.ShortTermDebt.Float64() + d.LongTermDebt.Float64() - d.CashAndEquivalents.Float64()
	return &nd
}
