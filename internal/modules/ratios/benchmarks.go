package ratios

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed benchmarks.yaml
var benchmarksYAML []byte

// defaultIndustry is the fallback bucket for unknown industries.
const defaultIndustry = "default"

// BenchmarkRange is one low/median/high percentile bucket
type BenchmarkRange struct {
	Low    float64 `yaml:"low" json:"low"`
	Median float64 `yaml:"median" json:"median"`
	High   float64 `yaml:"high" json:"high"`
}

// IndustryBenchmarks maps ratio name to its benchmark bucket
type IndustryBenchmarks map[string]BenchmarkRange

// BenchmarkTable holds the static per-industry benchmark data
type BenchmarkTable struct {
	industries map[string]IndustryBenchmarks
}

// LoadBenchmarks parses the embedded benchmark table
func LoadBenchmarks() (*BenchmarkTable, error) {
	var industries map[string]IndustryBenchmarks
	if err := yaml.Unmarshal(benchmarksYAML, &industries); err != nil {
		return nil, fmt.Errorf("failed to parse benchmark table: %w", err)
	}
	if _, ok := industries[defaultIndustry]; !ok {
		return nil, fmt.Errorf("benchmark table missing %q bucket", defaultIndustry)
	}
	return &BenchmarkTable{industries: industries}, nil
}

// ForIndustry returns the benchmarks for an industry, falling back to the
// generic bucket. The returned name is the bucket actually used.
func (t *BenchmarkTable) ForIndustry(industry string) (string, IndustryBenchmarks) {
	key := strings.ToLower(strings.TrimSpace(industry))
	if b, ok := t.industries[key]; ok {
		return key, b
	}
	return defaultIndustry, t.industries[defaultIndustry]
}

// Industries lists the available benchmark buckets
func (t *BenchmarkTable) Industries() []string {
	names := make([]string, 0, len(t.industries))
	for name := range t.industries {
		names = append(names, name)
	}
	return names
}
