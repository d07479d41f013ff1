package workingcapital

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed benchmarks.yaml
var benchmarksYAML []byte

const defaultIndustry = "default"

// IndustryNorms are the expected cycle-component values, in days
type IndustryNorms struct {
	DSO float64 `yaml:"dso" json:"dso"`
	DIO float64 `yaml:"dio" json:"dio"`
	DPO float64 `yaml:"dpo" json:"dpo"`
	CCC float64 `yaml:"ccc" json:"ccc"`
}

// NormsTable holds the static per-industry norms
type NormsTable struct {
	industries map[string]IndustryNorms
}

// LoadNorms parses the embedded norms table
func LoadNorms() (*NormsTable, error) {
	var industries map[string]IndustryNorms
	if err := yaml.Unmarshal(benchmarksYAML, &industries); err != nil {
		return nil, fmt.Errorf("failed to parse working-capital norms: %w", err)
	}
	if _, ok := industries[defaultIndustry]; !ok {
		return nil, fmt.Errorf("norms table missing %q bucket", defaultIndustry)
	}
	return &NormsTable{industries: industries}, nil
}

// ForIndustry returns the norms for an industry, falling back to the
// generic bucket. The returned name is the bucket actually used.
func (t *NormsTable) ForIndustry(industry string) (string, IndustryNorms) {
	key := strings.ToLower(strings.TrimSpace(industry))
	if n, ok := t.industries[key]; ok {
		return key, n
	}
	return defaultIndustry, t.industries[defaultIndustry]
}
