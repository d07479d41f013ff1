package ratios

import (
	"github.com/aristath/finsight/pkg/numeric"
)

// Calculate computes every ratio the inputs allow. A missing or zero
// denominator nulls that one ratio; the rest of the group still computes.
func Calculate(in Inputs) Result {
	grossProfit := in.GrossProfit
	if grossProfit == nil && in.Revenue != nil && in.COGS != nil {
		gp := *in.Revenue - *in.COGS
		grossProfit = &gp
	}

	totalDebt := sum(in.ShortTermDebt, in.LongTermDebt)
	freeCashFlow := diff(in.OperatingCashFlow, in.CapitalExpenditures)

	return Result{
		Liquidity: LiquidityRatios{
			CurrentRatio:   ratio(in.CurrentAssets, in.CurrentLiabilities),
			QuickRatio:     ratio(diff(in.CurrentAssets, in.Inventory), in.CurrentLiabilities),
			CashRatio:      ratio(in.CashAndEquivalents, in.CurrentLiabilities),
			WorkingCapital: amount(diff(in.CurrentAssets, in.CurrentLiabilities)),
		},
		Profitability: ProfitabilityRatios{
			GrossMargin:     percent(grossProfit, in.Revenue),
			OperatingMargin: percent(in.OperatingIncome, in.Revenue),
			NetMargin:       percent(in.NetIncome, in.Revenue),
			ROA:             percent(in.NetIncome, in.TotalAssets),
			ROE:             percent(in.NetIncome, in.ShareholdersEquity),
			ROCE:            percent(in.OperatingIncome, diff(in.TotalAssets, in.CurrentLiabilities)),
		},
		Leverage: LeverageRatios{
			DebtToEquity:     ratio(in.TotalLiabilities, in.ShareholdersEquity),
			DebtRatio:        ratio(in.TotalLiabilities, in.TotalAssets),
			EquityRatio:      ratio(in.ShareholdersEquity, in.TotalAssets),
			InterestCoverage: ratio(in.OperatingIncome, in.InterestExpense),
			DebtToCapital:    ratio(totalDebt, sum(totalDebt, in.ShareholdersEquity)),
		},
		Efficiency: EfficiencyRatios{
			AssetTurnover:       ratio(in.Revenue, in.TotalAssets),
			InventoryTurnover:   ratio(in.COGS, in.Inventory),
			ReceivablesTurnover: ratio(in.Revenue, in.AccountsReceivable),
			PayablesTurnover:    ratio(in.COGS, in.AccountsPayable),
			FixedAssetTurnover:  ratio(in.Revenue, in.FixedAssets),
		},
		CashFlow: CashFlowRatios{
			OperatingCashFlowRatio: ratio(in.OperatingCashFlow, in.CurrentLiabilities),
			CashFlowToDebt:         ratio(in.OperatingCashFlow, totalDebt),
			FreeCashFlowYield:      percent(freeCashFlow, in.Revenue),
		},
	}
}

// ratio divides two optional values, null on missing input or zero
// denominator
func ratio(num, den *float64) numeric.Metric {
	if num == nil || den == nil {
		return numeric.Invalid(numeric.ReasonMissingInput)
	}
	if *den == 0 {
		return numeric.Invalid(numeric.ReasonDivisionByZero)
	}
	return numeric.Valid(numeric.Round2(*num / *den))
}

// percent is ratio scaled ×100
func percent(num, den *float64) numeric.Metric {
	if num == nil || den == nil {
		return numeric.Invalid(numeric.ReasonMissingInput)
	}
	if *den == 0 {
		return numeric.Invalid(numeric.ReasonDivisionByZero)
	}
	return numeric.Valid(numeric.Round2(*num / *den * 100))
}

func amount(v *float64) numeric.Metric {
	if v == nil {
		return numeric.Invalid(numeric.ReasonMissingInput)
	}
	return numeric.Valid(numeric.Round2(*v))
}

// diff subtracts optional values; nil when either side is missing
func diff(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	v := *a - *b
	return &v
}

// sum adds optional values; nil only when both are missing
func sum(a, b *float64) *float64 {
	if a == nil && b == nil {
		return nil
	}
	v := 0.0
	if a != nil {
		v += *a
	}
	if b != nil {
		v += *b
	}
	return &v
}
