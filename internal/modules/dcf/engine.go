package dcf

import (
	"math"

	"github.com/aristath/finsight/pkg/formulas"
	"github.com/aristath/finsight/pkg/numeric"
)

// weightTolerance is how far debt + equity weights may drift from 100%
// before the result is flagged.
const weightTolerance = 1e-6

// Valuate runs the two-stage DCF: CAPM/WACC build-up, explicit free cash
// flow projection, Gordon-growth terminal value, and discounting to
// enterprise and equity value.
//
// A terminal growth rate at or above the WACC makes the terminal value
// undefined; the terminal and total-value fields come back null with a flag
// while the explicit-period table still computes.
func Valuate(in Inputs) Result {
	var result Result

	coc := costOfCapital(in)
	result.Valuation = Valuation{
		InitialFCF:         in.InitialFCF,
		ProjectionYears:    len(in.GrowthRates),
		TerminalGrowthRate: in.TerminalGrowthRate,
		NetDebt:            in.NetDebt,
		CostOfCapital:      coc,
	}

	if math.Abs(in.DebtWeight+in.EquityWeight-1) > weightTolerance {
		result.Flags = append(result.Flags, numeric.ReasonWeightsNotNormalized)
	}

	// Explicit period
	rows := make([]YearRow, 0, len(in.GrowthRates))
	fcf := in.InitialFCF
	explicitPV := 0.0
	for i, growth := range in.GrowthRates {
		year := i + 1
		fcf *= 1 + growth
		factor := formulas.DiscountFactor(coc.WACC, year)
		pv := fcf * factor
		explicitPV += pv
		rows = append(rows, YearRow{
			Year:           year,
			GrowthRate:     growth,
			FCF:            numeric.Round2(fcf),
			DiscountFactor: numeric.Round4(factor),
			PresentValue:   numeric.Round2(pv),
		})
	}

	summary := Summary{
		WACC:               numeric.Round4(coc.WACC),
		ExplicitPV:         numeric.Round2(explicitPV),
		ProjectedCashFlows: rows,
	}

	// Terminal value (Gordon growth) requires g < WACC
	if in.TerminalGrowthRate >= coc.WACC {
		result.Flags = append(result.Flags, numeric.ReasonTerminalGrowth)
		summary.TerminalValue = numeric.Invalid(numeric.ReasonTerminalGrowth)
		summary.TerminalPV = numeric.Invalid(numeric.ReasonTerminalGrowth)
		summary.EnterpriseValue = numeric.Invalid(numeric.ReasonTerminalGrowth)
		summary.EquityValue = numeric.Invalid(numeric.ReasonTerminalGrowth)
		result.Summary = summary
		return result
	}

	terminalValue := fcf * (1 + in.TerminalGrowthRate) / (coc.WACC - in.TerminalGrowthRate)
	terminalPV := terminalValue * formulas.DiscountFactor(coc.WACC, len(in.GrowthRates))
	enterpriseValue := explicitPV + terminalPV

	summary.TerminalValue = numeric.Valid(numeric.Round2(terminalValue))
	summary.TerminalPV = numeric.Valid(numeric.Round2(terminalPV))
	summary.EnterpriseValue = numeric.Valid(numeric.Round2(enterpriseValue))
	summary.EquityValue = numeric.Valid(numeric.Round2(enterpriseValue - in.NetDebt))

	result.Summary = summary
	return result
}

// costOfCapital builds the WACC from CAPM cost of equity and after-tax cost
// of debt
func costOfCapital(in Inputs) CostOfCapital {
	ke := in.RiskFreeRate + in.Beta*in.MarketRiskPremium
	kd := in.CostOfDebt * (1 - in.TaxRate)
	wacc := in.EquityWeight*ke + in.DebtWeight*kd
	return CostOfCapital{
		CostOfEquity:       numeric.Round4(ke),
		AfterTaxCostOfDebt: numeric.Round4(kd),
		DebtWeight:         in.DebtWeight,
		EquityWeight:       in.EquityWeight,
		WACC:               wacc,
	}
}
