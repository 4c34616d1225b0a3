// internal/risk/scaler.go
package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// StandardScaler holds fitted per-column mean and scale. Immutable after construction.
type StandardScaler struct {
	columns []string
	mean    []float64
	scale   []float64
}

// NewStandardScaler validates fitted parameters. A scale of exactly zero is stored as one,
// matching how the scaler was fitted for constant columns.
func NewStandardScaler(columns []string, mean, scale []float64) (*StandardScaler, error) {
	if len(columns) == 0 {
		return nil, &SchemaError{Reason: "scaler has no columns"}
	}
	if len(mean) != len(columns) || len(scale) != len(columns) {
		return nil, &SchemaError{Reason: fmt.Sprintf(
			"scaler has %d columns, %d means and %d scales", len(columns), len(mean), len(scale))}
	}

	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, &SchemaError{Column: c, Reason: "duplicate scaler column"}
		}
		seen[c] = struct{}{}
	}

	s := &StandardScaler{
		columns: append([]string(nil), columns...),
		mean:    append([]float64(nil), mean...),
		scale:   append([]float64(nil), scale...),
	}
	for i, c := range s.columns {
		if !finite(s.mean[i]) || !finite(s.scale[i]) {
			return nil, &SchemaError{Column: c, Reason: "fitted parameters are not finite"}
		}
		if s.scale[i] < 0 {
			return nil, &SchemaError{Column: c, Reason: "negative scale"}
		}
		if s.scale[i] == 0 {
			s.scale[i] = 1
		}
	}
	return s, nil
}

func (s *StandardScaler) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Transform standardizes every scaler column of raw at once: (raw - mean) / scale.
func (s *StandardScaler) Transform(raw map[string]float64) (map[string]float64, error) {
	if len(raw) == 0 {
		return nil, &ScalerDomainError{}
	}

	x := make([]float64, len(s.columns))
	for i, c := range s.columns {
		v, ok := raw[c]
		if !ok {
			return nil, &SchemaError{Column: c, Reason: "numeric column missing from record"}
		}
		if !finite(v) {
			return nil, &ScalerDomainError{Column: c, Value: v}
		}
		x[i] = v
	}

	floats.Sub(x, s.mean)
	floats.Div(x, s.scale)

	out := make(map[string]float64, len(s.columns))
	for i, c := range s.columns {
		out[c] = x[i]
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
