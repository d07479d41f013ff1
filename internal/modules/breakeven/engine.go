package breakeven

import (
	"github.com/aristath/finsight/pkg/numeric"
)

// Calculate runs the cost-volume-profit analysis.
//
// A non-positive contribution margin makes the break-even point undefined;
// the affected metrics come back null with a flag instead of dividing by
// zero or returning garbage.
func Calculate(in Inputs) Result {
	var result Result

	cm := in.SellingPricePerUnit - in.VariableCostPerUnit

	result.CurrentPerformance = CurrentPerformance{
		Units:         in.CurrentUnits,
		Revenue:       in.CurrentUnits * in.SellingPricePerUnit,
		VariableCosts: in.CurrentUnits * in.VariableCostPerUnit,
		FixedCosts:    in.FixedCosts,
		Profit:        in.CurrentUnits*cm - in.FixedCosts,
	}
	result.TargetProfit.Profit = in.TargetProfit

	if cm <= 0 {
		result.Flags = append(result.Flags, numeric.ReasonNonPositiveMargin)
		result.Metrics.ContributionMargin = numeric.Valid(numeric.Round2(cm))
		result.Metrics.ContributionMarginRatio = marginRatio(cm, in.SellingPricePerUnit)
		result.BreakEven.Units = numeric.Invalid(numeric.ReasonNonPositiveMargin)
		result.BreakEven.Revenue = numeric.Invalid(numeric.ReasonNonPositiveMargin)
		result.TargetProfit.Units = numeric.Invalid(numeric.ReasonNonPositiveMargin)
		result.TargetProfit.Revenue = numeric.Invalid(numeric.ReasonNonPositiveMargin)
		result.Metrics.MarginOfSafetyUnits = numeric.Invalid(numeric.ReasonNonPositiveMargin)
		result.Metrics.MarginOfSafety = numeric.Invalid(numeric.ReasonNonPositiveMargin)
		result.Metrics.OperatingLeverage = numeric.Invalid(numeric.ReasonNonPositiveMargin)
		return result
	}

	breakEvenUnits := in.FixedCosts / cm
	targetUnits := (in.FixedCosts + in.TargetProfit) / cm

	result.Metrics.ContributionMargin = numeric.Valid(numeric.Round2(cm))
	result.Metrics.ContributionMarginRatio = marginRatio(cm, in.SellingPricePerUnit)
	result.BreakEven.Units = numeric.Valid(numeric.Round2(breakEvenUnits))
	result.BreakEven.Revenue = numeric.Valid(numeric.Round2(breakEvenUnits * in.SellingPricePerUnit))
	result.TargetProfit.Units = numeric.Valid(numeric.Round2(targetUnits))
	result.TargetProfit.Revenue = numeric.Valid(numeric.Round2(targetUnits * in.SellingPricePerUnit))

	if in.CurrentUnits == 0 {
		result.Metrics.MarginOfSafetyUnits = numeric.Invalid(numeric.ReasonDivisionByZero)
		result.Metrics.MarginOfSafety = numeric.Invalid(numeric.ReasonDivisionByZero)
	} else {
		result.Metrics.MarginOfSafetyUnits = numeric.Valid(numeric.Round2(in.CurrentUnits - breakEvenUnits))
		result.Metrics.MarginOfSafety = numeric.Valid(numeric.Round4((in.CurrentUnits - breakEvenUnits) / in.CurrentUnits))
	}

	// DOL = (CM × units) / (CM × units − fixed costs)
	leverageDenom := cm*in.CurrentUnits - in.FixedCosts
	if leverageDenom == 0 {
		result.Metrics.OperatingLeverage = numeric.Invalid(numeric.ReasonDivisionByZero)
	} else {
		result.Metrics.OperatingLeverage = numeric.Valid(numeric.Round4(cm * in.CurrentUnits / leverageDenom))
	}

	return result
}

// WhatIf applies percentage deltas to price, variable cost and fixed cost,
// recomputes the full result set, and reports the per-metric change.
func WhatIf(in Inputs, pricePct, variablePct, fixedPct float64) (Result, Result, Comparison) {
	current := Calculate(in)

	adjusted := in
	adjusted.SellingPricePerUnit *= 1 + pricePct/100
	adjusted.VariableCostPerUnit *= 1 + variablePct/100
	adjusted.FixedCosts *= 1 + fixedPct/100
	whatIf := Calculate(adjusted)

	comparison := Comparison{
		Current: comparableMetrics(current),
		WhatIf:  comparableMetrics(whatIf),
		Change:  map[string]numeric.Metric{},
	}
	for name, cur := range comparison.Current {
		comparison.Change[name] = percentChange(cur, comparison.WhatIf[name])
	}

	return current, whatIf, comparison
}

func comparableMetrics(r Result) map[string]numeric.Metric {
	return map[string]numeric.Metric{
		"contributionMargin": r.Metrics.ContributionMargin,
		"breakEvenUnits":     r.BreakEven.Units,
		"breakEvenRevenue":   r.BreakEven.Revenue,
		"marginOfSafety":     r.Metrics.MarginOfSafety,
		"operatingLeverage":  r.Metrics.OperatingLeverage,
		"profit":             numeric.Valid(numeric.Round2(r.CurrentPerformance.Profit)),
	}
}

func percentChange(current, whatIf numeric.Metric) numeric.Metric {
	cur, okCur := current.Float64()
	next, okNext := whatIf.Float64()
	if !okCur || !okNext {
		return numeric.Invalid(numeric.ReasonMissingInput)
	}
	if cur == 0 {
		return numeric.Invalid(numeric.ReasonDivisionByZero)
	}
	return numeric.Valid(numeric.Round2((next - cur) / cur * 100))
}

func marginRatio(cm, price float64) numeric.Metric {
	if price == 0 {
		return numeric.Invalid(numeric.ReasonDivisionByZero)
	}
	return numeric.Valid(numeric.Round2(cm / price * 100))
}
