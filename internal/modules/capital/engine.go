package capital

import (
	"fmt"

	"github.com/aristath/finsight/pkg/formulas"
	"github.com/aristath/finsight/pkg/numeric"
)

// Evaluate computes the full metric set for one project. Metrics that have
// no solution (IRR without a sign change, payback never reached) come back
// null with a flag; the rest of the response still computes.
func Evaluate(in Inputs) Result {
	var result Result

	npv := formulas.NPV(in.InitialInvestment, in.CashFlows, in.DiscountRate)

	metrics := Metrics{
		NPV: numeric.Valid(numeric.Round2(npv)),
	}

	if irr := formulas.IRR(in.InitialInvestment, in.CashFlows); irr != nil {
		metrics.IRR = numeric.Valid(numeric.Round4(*irr))
	} else {
		metrics.IRR = numeric.Invalid(numeric.ReasonNoSolutionFound)
		result.Flags = append(result.Flags, numeric.ReasonNoSolutionFound)
	}

	if mirr := formulas.MIRR(in.InitialInvestment, in.CashFlows, in.DiscountRate, in.ReinvestmentRate); mirr != nil {
		metrics.MIRR = numeric.Valid(numeric.Round4(*mirr))
	} else {
		metrics.MIRR = numeric.Invalid(numeric.ReasonNoSolutionFound)
	}

	if payback := formulas.PaybackPeriod(in.InitialInvestment, in.CashFlows); payback != nil {
		metrics.PaybackPeriod = numeric.Valid(numeric.Round2(*payback))
	} else {
		metrics.PaybackPeriod = numeric.Invalid(numeric.ReasonNoSolutionFound)
	}

	if discounted := formulas.DiscountedPayback(in.InitialInvestment, in.CashFlows, in.DiscountRate); discounted != nil {
		metrics.DiscountedPayback = numeric.Valid(numeric.Round2(*discounted))
	} else {
		metrics.DiscountedPayback = numeric.Invalid(numeric.ReasonNoSolutionFound)
	}

	if pi := formulas.ProfitabilityIndex(in.InitialInvestment, in.CashFlows, in.DiscountRate); pi != nil {
		metrics.ProfitabilityIndex = numeric.Valid(numeric.Round4(*pi))
	} else {
		metrics.ProfitabilityIndex = numeric.Invalid(numeric.ReasonDivisionByZero)
	}

	if eaa := formulas.EquivalentAnnualAnnuity(npv, in.DiscountRate, len(in.CashFlows)); eaa != nil {
		metrics.EAA = numeric.Valid(numeric.Round2(*eaa))
	} else {
		metrics.EAA = numeric.Invalid(numeric.ReasonDivisionByZero)
	}

	metrics.Decision = decide(npv, metrics.IRR, in.DiscountRate)
	result.Metrics = metrics
	result.CashFlowAnalysis = cashFlowTable(in)
	return result
}

// decide applies the NPV acceptance rule
func decide(npv float64, irr numeric.Metric, discountRate float64) Decision {
	if npv > 0 {
		rec := fmt.Sprintf("Accept: the project adds %.2f in present value at a %.2f%% hurdle rate.", npv, discountRate*100)
		if irrVal, ok := irr.Float64(); ok {
			rec = fmt.Sprintf("Accept: the project adds %.2f in present value and returns %.2f%% against a %.2f%% hurdle rate.",
				npv, irrVal*100, discountRate*100)
		}
		return Decision{Accept: true, Recommendation: rec}
	}
	return Decision{
		Accept:         false,
		Recommendation: fmt.Sprintf("Reject: the project destroys %.2f in present value at a %.2f%% hurdle rate.", -npv, discountRate*100),
	}
}

// cashFlowTable builds the per-period audit table, including period 0
func cashFlowTable(in Inputs) []CashFlowRow {
	rows := make([]CashFlowRow, 0, len(in.CashFlows)+1)

	rows = append(rows, CashFlowRow{
		Period:               0,
		CashFlow:             -in.InitialInvestment,
		DiscountFactor:       1,
		PresentValue:         -in.InitialInvestment,
		Cumulative:           -in.InitialInvestment,
		CumulativeDiscounted: -in.InitialInvestment,
	})

	cumulative := -in.InitialInvestment
	cumulativeDiscounted := -in.InitialInvestment
	for t, cf := range in.CashFlows {
		period := t + 1
		factor := formulas.DiscountFactor(in.DiscountRate, period)
		pv := cf * factor
		cumulative += cf
		cumulativeDiscounted += pv
		rows = append(rows, CashFlowRow{
			Period:               period,
			CashFlow:             numeric.Round2(cf),
			DiscountFactor:       numeric.Round4(factor),
			PresentValue:         numeric.Round2(pv),
			Cumulative:           numeric.Round2(cumulative),
			CumulativeDiscounted: numeric.Round2(cumulativeDiscounted),
		})
	}
	return rows
}
