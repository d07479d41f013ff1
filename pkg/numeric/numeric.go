// Package numeric provides the value types shared by all calculation
// endpoints: lenient JSON numbers (clients send both `123.45` and `"123.45"`)
// and nullable metrics that render as "N/A" on the frontend instead of
// failing the whole response.
package numeric

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Reason codes for metrics that could not be computed.
const (
	ReasonDivisionByZero       = "division_by_zero"
	ReasonMissingInput         = "missing_input"
	ReasonNoSolutionFound      = "no_solution_found"
	ReasonNonPositiveMargin    = "non_positive_contribution_margin"
	ReasonTerminalGrowth       = "terminal_growth_exceeds_wacc"
	ReasonWeightsNotNormalized = "weights_not_normalized"
	ReasonNarrativeUnavailable = "narrative_unavailable"
)

// Amount is a monetary or percentage input field. It accepts both JSON
// numbers and decimal strings, which is what the consuming frontend expects
// the backend to tolerate.
type Amount struct {
	dec decimal.Decimal
	set bool
}

// NewAmount creates a set Amount from a float.
func NewAmount(v float64) Amount {
	return Amount{dec: decimal.NewFromFloat(v), set: true}
}

// UnmarshalJSON accepts numbers, quoted decimal strings, and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		a.set = false
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("invalid numeric value %s: %w", string(data), err)
	}
	a.dec = d
	a.set = true
	return nil
}

// MarshalJSON renders the amount as a bare number, or null when unset.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte("null"), nil
	}
	return []byte(a.dec.String()), nil
}

// Float64 returns the amount as a float64. Unset amounts return 0.
func (a Amount) Float64() float64 {
	if !a.set {
		return 0
	}
	f, _ := a.dec.Float64()
	return f
}

// IsSet reports whether a value was provided.
func (a Amount) IsSet() bool {
	return a.set
}

// Ptr returns the amount as *float64, nil when unset. Used by the ratio
// calculator, where a missing field must stay missing rather than become 0.
func (a Amount) Ptr() *float64 {
	if !a.set {
		return nil
	}
	f, _ := a.dec.Float64()
	return &f
}

// Metric is a single computed value that may be undefined. Undefined metrics
// marshal as null and carry a machine-readable reason.
type Metric struct {
	value  *float64
	reason string
}

// Valid creates a defined metric.
func Valid(v float64) Metric {
	return Metric{value: &v}
}

// Invalid creates an undefined metric with a reason code.
func Invalid(reason string) Metric {
	return Metric{reason: reason}
}

// Float64 returns the value and whether it is defined.
func (m Metric) Float64() (float64, bool) {
	if m.value == nil {
		return 0, false
	}
	return *m.value, true
}

// Reason returns the reason code for an undefined metric, or "".
func (m Metric) Reason() string {
	return m.reason
}

// MarshalJSON renders the metric as a number or null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if m.value == nil {
		return []byte("null"), nil
	}
	if math.IsNaN(*m.value) || math.IsInf(*m.value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(*m.value)
}

// UnmarshalJSON reads a number or null. Reason codes do not round-trip; they
// travel separately in response flags.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		m.value = nil
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.value = &v
	return nil
}

// Round2 rounds to 2 decimal places, the precision every percentage-type
// result is reported at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to 4 decimal places, used for rates and fractions.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
