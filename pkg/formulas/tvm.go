package formulas

import (
	"math"
)

// IRR search configuration. The bracket scan covers -99% to +1000%; if the
// NPV curve has no sign change inside that range the IRR is undefined.
const (
	irrLowerBound    = -0.99
	irrUpperBound    = 10.0
	irrTolerance     = 1e-7
	irrMaxIterations = 200
	irrScanSteps     = 1000
)

// DiscountFactor returns 1 / (1+rate)^period.
func DiscountFactor(rate float64, period int) float64 {
	return 1 / math.Pow(1+rate, float64(period))
}

// NPV calculates Net Present Value
//
// Formula:
//
//	NPV = -initialInvestment + Σ cashFlows[t] / (1+rate)^t   for t = 1..n
//
// Args:
//
//	initialInvestment: Period-0 outlay as a positive number
//	cashFlows: Cash flows for periods 1..n
//	rate: Discount rate per period (decimal, e.g. 0.10)
func NPV(initialInvestment float64, cashFlows []float64, rate float64) float64 {
	npv := -initialInvestment
	for t, cf := range cashFlows {
		npv += cf * DiscountFactor(rate, t+1)
	}
	return npv
}

// IRR finds the rate at which NPV is zero using a bracket scan followed by
// bisection. Returns nil when no sign change exists in the search interval
// (e.g. all cash flows have the same sign as the investment).
func IRR(initialInvestment float64, cashFlows []float64) *float64 {
	f := func(rate float64) float64 {
		return NPV(initialInvestment, cashFlows, rate)
	}

	// Scan for a bracketing interval
	step := (irrUpperBound - irrLowerBound) / irrScanSteps
	lo, hi := math.NaN(), math.NaN()
	prev := f(irrLowerBound)
	for i := 1; i <= irrScanSteps; i++ {
		r := irrLowerBound + float64(i)*step
		cur := f(r)
		if prev == 0 {
			root := irrLowerBound + float64(i-1)*step
			return &root
		}
		if (prev < 0) != (cur < 0) {
			lo = irrLowerBound + float64(i-1)*step
			hi = r
			break
		}
		prev = cur
	}
	if math.IsNaN(lo) {
		return nil
	}

	// Bisect with a hard iteration cap so the search always terminates
	fLo := f(lo)
	for i := 0; i < irrMaxIterations && hi-lo > irrTolerance; i++ {
		mid := (lo + hi) / 2
		fMid := f(mid)
		if fMid == 0 {
			return &mid
		}
		if (fLo < 0) == (fMid < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}
	root := (lo + hi) / 2
	return &root
}

// MIRR calculates the Modified Internal Rate of Return
//
// Formula:
//
//	MIRR = (FV of inflows at reinvestmentRate / |PV of outflows at financeRate|)^(1/n) - 1
//
// The initial investment counts as a period-0 outflow. Returns nil when
// there are no inflows or no outflows.
func MIRR(initialInvestment float64, cashFlows []float64, financeRate, reinvestmentRate float64) *float64 {
	n := len(cashFlows)
	if n == 0 {
		return nil
	}

	pvOutflows := initialInvestment // period 0, already in present terms
	fvInflows := 0.0
	for t, cf := range cashFlows {
		period := t + 1
		if cf >= 0 {
			fvInflows += cf * math.Pow(1+reinvestmentRate, float64(n-period))
		} else {
			pvOutflows += -cf * DiscountFactor(financeRate, period)
		}
	}

	if pvOutflows <= 0 || fvInflows <= 0 {
		return nil
	}

	mirr := math.Pow(fvInflows/pvOutflows, 1/float64(n)) - 1
	return &mirr
}

// PaybackPeriod returns the fractional number of periods until cumulative
// cash flow recovers the initial investment, with linear interpolation
// inside the recovery period. Returns nil when the investment is never
// recovered within the horizon.
func PaybackPeriod(initialInvestment float64, cashFlows []float64) *float64 {
	if initialInvestment <= 0 {
		zero := 0.0
		return &zero
	}
	cumulative := 0.0
	for t, cf := range cashFlows {
		prev := cumulative
		cumulative += cf
		if cumulative >= initialInvestment {
			remaining := initialInvestment - prev
			period := float64(t)
			if cf > 0 {
				period += remaining / cf
			}
			return &period
		}
	}
	return nil
}

// DiscountedPayback is PaybackPeriod computed on discounted cash flows.
func DiscountedPayback(initialInvestment float64, cashFlows []float64, rate float64) *float64 {
	discounted := make([]float64, len(cashFlows))
	for t, cf := range cashFlows {
		discounted[t] = cf * DiscountFactor(rate, t+1)
	}
	return PaybackPeriod(initialInvestment, discounted)
}

// ProfitabilityIndex returns PV of future cash flows / initial investment.
// Returns nil when the investment is zero.
func ProfitabilityIndex(initialInvestment float64, cashFlows []float64, rate float64) *float64 {
	if initialInvestment == 0 {
		return nil
	}
	pv := 0.0
	for t, cf := range cashFlows {
		pv += cf * DiscountFactor(rate, t+1)
	}
	pi := pv / initialInvestment
	return &pi
}

// EquivalentAnnualAnnuity converts an NPV into a constant annual payment
// over n periods
//
// Formula:
//
//	EAA = NPV × r / (1 - (1+r)^-n)
//
// At a zero rate the annuity factor degenerates and the payment is simply
// NPV / n. Returns nil when n is zero.
func EquivalentAnnualAnnuity(npv float64, rate float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	if rate == 0 {
		eaa := npv / float64(n)
		return &eaa
	}
	denom := 1 - math.Pow(1+rate, -float64(n))
	if denom == 0 {
		return nil
	}
	eaa := npv * rate / denom
	return &eaa
}
