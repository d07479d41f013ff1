package ratios

import (
	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/pkg/numeric"
)

// Inputs are the statement aggregates the calculator reads. Nil means the
// field was not reported; it is never treated as zero.
type Inputs struct {
	Revenue             *float64
	COGS                *float64
	GrossProfit         *float64
	OperatingIncome     *float64
	NetIncome           *float64
	InterestExpense     *float64
	OperatingCashFlow   *float64
	CapitalExpenditures *float64

	CashAndEquivalents *float64
	AccountsReceivable *float64
	Inventory          *float64
	CurrentAssets      *float64
	FixedAssets        *float64
	TotalAssets        *float64
	AccountsPayable    *float64
	CurrentLiabilities *float64
	ShortTermDebt      *float64
	LongTermDebt       *float64
	TotalLiabilities   *float64
	ShareholdersEquity *float64
}

// InputsFromStatement maps stored statement data onto calculator inputs
func InputsFromStatement(d companies.StatementData) Inputs {
	return Inputs{
		Revenue:             d.Revenue.Ptr(),
		COGS:                d.COGS.Ptr(),
		GrossProfit:         d.GrossProfit.Ptr(),
		OperatingIncome:     d.OperatingIncome.Ptr(),
		NetIncome:           d.NetIncome.Ptr(),
		InterestExpense:     d.InterestExpense.Ptr(),
		OperatingCashFlow:   d.OperatingCashFlow.Ptr(),
		CapitalExpenditures: d.CapitalExpenditures.Ptr(),
		CashAndEquivalents:  d.CashAndEquivalents.Ptr(),
		AccountsReceivable:  d.AccountsReceivable.Ptr(),
		Inventory:           d.Inventory.Ptr(),
		CurrentAssets:       d.CurrentAssets.Ptr(),
		FixedAssets:         d.FixedAssets.Ptr(),
		TotalAssets:         d.TotalAssets.Ptr(),
		AccountsPayable:     d.AccountsPayable.Ptr(),
		CurrentLiabilities:  d.CurrentLiabilities.Ptr(),
		ShortTermDebt:       d.ShortTermDebt.Ptr(),
		LongTermDebt:        d.LongTermDebt.Ptr(),
		TotalLiabilities:    d.TotalLiabilities.Ptr(),
		ShareholdersEquity:  d.ShareholdersEquity.Ptr(),
	}
}

// LiquidityRatios measure short-term solvency
type LiquidityRatios struct {
	CurrentRatio   numeric.Metric `json:"currentRatio"`
	QuickRatio     numeric.Metric `json:"quickRatio"`
	CashRatio      numeric.Metric `json:"cashRatio"`
	WorkingCapital numeric.Metric `json:"workingCapital"`
}

// ProfitabilityRatios are returned as percentages (×100, 2 decimals)
type ProfitabilityRatios struct {
	GrossMargin     numeric.Metric `json:"grossMargin"`
	OperatingMargin numeric.Metric `json:"operatingMargin"`
	NetMargin       numeric.Metric `json:"netMargin"`
	ROA             numeric.Metric `json:"roa"`
	ROE             numeric.Metric `json:"roe"`
	ROCE            numeric.Metric `json:"roce"`
}

// LeverageRatios measure capital structure and debt service
type LeverageRatios struct {
	DebtToEquity     numeric.Metric `json:"debtToEquity"`
	DebtRatio        numeric.Metric `json:"debtRatio"`
	EquityRatio      numeric.Metric `json:"equityRatio"`
	InterestCoverage numeric.Metric `json:"interestCoverage"`
	DebtToCapital    numeric.Metric `json:"debtToCapital"`
}

// EfficiencyRatios measure asset utilization
type EfficiencyRatios struct {
	AssetTurnover       numeric.Metric `json:"assetTurnover"`
	InventoryTurnover   numeric.Metric `json:"inventoryTurnover"`
	ReceivablesTurnover numeric.Metric `json:"receivablesTurnover"`
	PayablesTurnover    numeric.Metric `json:"payablesTurnover"`
	FixedAssetTurnover  numeric.Metric `json:"fixedAssetTurnover"`
}

// CashFlowRatios measure cash generation against obligations
type CashFlowRatios struct {
	OperatingCashFlowRatio numeric.Metric `json:"operatingCashFlowRatio"`
	CashFlowToDebt         numeric.Metric `json:"cashFlowToDebt"`
	FreeCashFlowYield      numeric.Metric `json:"freeCashFlowYield"`
}

// Result groups all computed ratios
type Result struct {
	Liquidity     LiquidityRatios     `json:"liquidity"`
	Profitability ProfitabilityRatios `json:"profitability"`
	Leverage      LeverageRatios      `json:"leverage"`
	Efficiency    EfficiencyRatios    `json:"efficiency"`
	CashFlow      CashFlowRatios      `json:"cashFlow"`
}

// CalculateRequest is the payload for POST /api/financial-ratios/calculate
type CalculateRequest struct {
	CompanyID *int64                  `json:"company_id"`
	Industry  string                  `json:"industry"`
	Data      companies.StatementData `json:"data"`
	Analyze   bool                    `json:"analyze"`
}
