package montecarlo

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/finsight/pkg/formulas"
	"github.com/aristath/finsight/pkg/numeric"
)

// chunkSize is how many trials one worker claims at a time. Cancellation is
// checked between chunks.
const chunkSize = 1024

// Sample draws from Normal(mean, std) and clamps to [min, max].
func (d Distribution) Sample(rng *rand.Rand) float64 {
	v := d.Mean + rng.NormFloat64()*d.Std
	return math.Max(d.Min, math.Min(d.Max, v))
}

// Run executes the simulation: NumSimulations independent trials of the
// projection model, then one aggregation pass. Trials are spread across
// workers; each trial seeds its own generator from the base seed and the
// trial index, so results are bit-for-bit reproducible for a given seed no
// matter how the scheduler interleaves workers.
func Run(ctx context.Context, in Inputs) (Result, error) {
	trials := in.NumSimulations

	netIncomes := make([]float64, trials)
	npvs := make([]float64, trials)

	workers := runtime.NumCPU()
	if workers > trials/chunkSize+1 {
		workers = trials/chunkSize + 1
	}

	var wg sync.WaitGroup
	next := make(chan int) // chunk start indices

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for start := range next {
				end := start + chunkSize
				if end > trials {
					end = trials
				}
				for i := start; i < end; i++ {
					rng := rand.New(rand.NewSource(in.Seed + int64(i)))
					netIncomes[i], npvs[i] = runTrial(in, rng)
				}
			}
		}()
	}

	var cancelled error
	for start := 0; start < trials; start += chunkSize {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		next <- start
	}
	close(next)
	wg.Wait()

	if cancelled != nil {
		return Result{}, cancelled
	}

	return Result{
		Simulation: SimulationInfo{
			NumSimulations:  trials,
			ProjectionYears: in.ProjectionYears,
			Seed:            in.Seed,
			Variables: map[string]Distribution{
				VarRevenueGrowth: in.RevenueGrowth,
				VarCostRatio:     in.CostRatio,
				VarOpexGrowth:    in.OpexGrowth,
				VarDiscountRate:  in.DiscountRate,
			},
		},
		Summary: aggregate(netIncomes, npvs),
	}, nil
}

// runTrial samples each variable once, then runs the deterministic P&L
// projection over the horizon. Returns the final-year net income and the
// NPV of the net-income stream.
func runTrial(in Inputs, rng *rand.Rand) (netIncome, npv float64) {
	revenueGrowth := in.RevenueGrowth.Sample(rng)
	costRatio := in.CostRatio.Sample(rng)
	opexGrowth := in.OpexGrowth.Sample(rng)
	discountRate := in.DiscountRate.Sample(rng)

	revenue := in.BaseRevenue
	opex := in.BaseOpex
	npv = -in.InitialInvestment

	for t := 1; t <= in.ProjectionYears; t++ {
		revenue *= 1 + revenueGrowth
		opex *= 1 + opexGrowth
		cogs := revenue * costRatio
		netIncome = (revenue - cogs - opex) * (1 - in.TaxRate)
		npv += netIncome * formulas.DiscountFactor(discountRate, t)
	}
	return netIncome, npv
}

func aggregate(netIncomes, npvs []float64) Summary {
	return Summary{
		Statistics: map[string]Stats{
			"netIncome": describe(netIncomes),
			"npv":       describe(npvs),
		},
		Percentiles: map[string]PercentileSet{
			"netIncome": percentileSet(netIncomes),
			"npv":       percentileSet(npvs),
		},
		RiskMetrics: RiskMetrics{
			VaR95:             numeric.Round2(formulas.Percentile(npvs, 5)),
			NetIncomeVaR95:    numeric.Round2(formulas.Percentile(netIncomes, 5)),
			DownsideDeviation: numeric.Round2(downsideDeviation(npvs)),
		},
		Probabilities: Probabilities{
			ProfitProbability:      numeric.Round4(formulas.FractionAbove(netIncomes, 0)),
			PositiveNPVProbability: numeric.Round4(formulas.FractionAbove(npvs, 0)),
		},
	}
}

func describe(samples []float64) Stats {
	return Stats{
		Mean:   numeric.Round2(stat.Mean(samples, nil)),
		Median: numeric.Round2(formulas.Median(samples)),
		StdDev: numeric.Round2(formulas.StdDev(samples)),
		Min:    numeric.Round2(floats.Min(samples)),
		Max:    numeric.Round2(floats.Max(samples)),
	}
}

func percentileSet(samples []float64) PercentileSet {
	ps := formulas.Percentiles(samples, []float64{5, 10, 25, 50, 75, 90, 95})
	return PercentileSet{
		P5:  numeric.Round2(ps[5]),
		P10: numeric.Round2(ps[10]),
		P25: numeric.Round2(ps[25]),
		P50: numeric.Round2(ps[50]),
		P75: numeric.Round2(ps[75]),
		P90: numeric.Round2(ps[90]),
		P95: numeric.Round2(ps[95]),
	}
}

// downsideDeviation is the root-mean-square of negative outcomes only.
func downsideDeviation(samples []float64) float64 {
	var sum float64
	count := 0
	for _, v := range samples {
		if v < 0 {
			sum += v * v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(count))
}
