package workingcapital

import (
	"math"

	"github.com/aristath/finsight/pkg/numeric"
)

// daysPerYear is the basis for all outstanding-days metrics.
const daysPerYear = 365

const (
	statusGood         = "good"
	statusAboveAverage = "above_average"
	statusNotAvailable = "not_available"
)

// Analyze computes the cash-conversion-cycle metrics and grades them
// against the given industry norms. A negative CCC is favorable and is
// reported as-is, never clamped.
func Analyze(in Inputs, industry string, norms IndustryNorms) Result {
	var result Result

	dso := days(in.AccountsReceivable, in.Revenue)
	dio := days(in.Inventory, in.COGS)
	dpo := days(in.AccountsPayable, in.COGS)

	metrics := Metrics{DSO: dso, DIO: dio, DPO: dpo}

	dsoV, dsoOK := dso.Float64()
	dioV, dioOK := dio.Float64()
	dpoV, dpoOK := dpo.Float64()
	if dsoOK && dioOK && dpoOK {
		metrics.CashConversionCycle = numeric.Valid(numeric.Round2(dsoV + dioV - dpoV))
	} else {
		metrics.CashConversionCycle = numeric.Invalid(numeric.ReasonMissingInput)
	}

	workingCapital := in.AccountsReceivable + in.Inventory - in.AccountsPayable
	metrics.WorkingCapital = numeric.Valid(numeric.Round2(workingCapital))
	if workingCapital == 0 {
		metrics.WorkingCapitalTurnover = numeric.Invalid(numeric.ReasonDivisionByZero)
	} else {
		metrics.WorkingCapitalTurnover = numeric.Valid(numeric.Round2(in.Revenue / workingCapital))
	}

	result.Metrics = metrics
	result.Benchmarks = Benchmarks{
		Industry: industry,
		DSO:      compare(dso, norms.DSO, false),
		DIO:      compare(dio, norms.DIO, false),
		DPO:      compare(dpo, norms.DPO, true),
		CCC:      compare(metrics.CashConversionCycle, norms.CCC, false),
	}
	result.Optimization = optimization(in, metrics, norms)
	return result
}

// days converts a balance into outstanding days against an annual flow
func days(balance, annualFlow float64) numeric.Metric {
	if annualFlow == 0 {
		return numeric.Invalid(numeric.ReasonDivisionByZero)
	}
	return numeric.Valid(numeric.Round2(balance / annualFlow * daysPerYear))
}

// compare grades a metric against its norm. Lower is better for DSO, DIO
// and CCC; higher is better for DPO. An undefined metric gets no verdict.
func compare(value numeric.Metric, benchmark float64, higherIsBetter bool) BenchmarkComparison {
	comparison := BenchmarkComparison{Value: value, Benchmark: benchmark}
	v, ok := value.Float64()
	if !ok {
		comparison.Status = statusNotAvailable
		return comparison
	}
	better := v <= benchmark
	if higherIsBetter {
		better = v >= benchmark
	}
	if better {
		comparison.Status = statusGood
	} else {
		comparison.Status = statusAboveAverage
	}
	return comparison
}

// optimization estimates the cash released by moving each component to its
// industry norm. Components already at or better than the norm contribute
// zero.
func optimization(in Inputs, metrics Metrics, norms IndustryNorms) Optimization {
	dailyRevenue := in.Revenue / daysPerYear
	dailyCOGS := in.COGS / daysPerYear

	receivables := gapPotential(metrics.DSO, norms.DSO, dailyRevenue, false)
	inventory := gapPotential(metrics.DIO, norms.DIO, dailyCOGS, false)
	payables := gapPotential(metrics.DPO, norms.DPO, dailyCOGS, true)

	opt := Optimization{
		ReceivablesPotential: receivables,
		InventoryPotential:   inventory,
		PayablesPotential:    payables,
	}

	total := 0.0
	defined := false
	for _, m := range []numeric.Metric{receivables, inventory, payables} {
		if v, ok := m.Float64(); ok {
			total += v
			defined = true
		}
	}
	if defined {
		opt.TotalPotential = numeric.Valid(numeric.Round2(total))
	} else {
		opt.TotalPotential = numeric.Invalid(numeric.ReasonMissingInput)
	}
	return opt
}

func gapPotential(value numeric.Metric, benchmark, dailyFlow float64, higherIsBetter bool) numeric.Metric {
	v, ok := value.Float64()
	if !ok {
		return numeric.Invalid(numeric.ReasonMissingInput)
	}
	gap := v - benchmark
	if higherIsBetter {
		gap = benchmark - v
	}
	return numeric.Valid(numeric.Round2(math.Max(0, gap) * dailyFlow))
}
