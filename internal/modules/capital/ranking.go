package capital

import (
	"math"
	"sort"
)

// npvTieTolerance treats NPVs within a cent as tied, falling back to the
// profitability index for capital-constrained ordering.
const npvTieTolerance = 0.01

// Rank orders evaluated projects by NPV descending; ties break on
// profitability index descending. The reported score is the project's NPV.
func Rank(results []Result) []RankedProject {
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		npvA, okA := results[order[a]].Metrics.NPV.Float64()
		npvB, okB := results[order[b]].Metrics.NPV.Float64()
		if okA != okB {
			return okA
		}
		if okA && math.Abs(npvA-npvB) >= npvTieTolerance {
			return npvA > npvB
		}
		piA, okPIA := results[order[a]].Metrics.ProfitabilityIndex.Float64()
		piB, okPIB := results[order[b]].Metrics.ProfitabilityIndex.Float64()
		if okPIA != okPIB {
			return okPIA
		}
		return okPIA && piA > piB
	})

	ranking := make([]RankedProject, len(order))
	for rank, idx := range order {
		ranking[rank] = RankedProject{
			Name:  results[idx].Project.Name,
			Rank:  rank + 1,
			Score: results[idx].Metrics.NPV,
		}
	}
	return ranking
}
