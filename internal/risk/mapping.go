// internal/risk/mapping.go
package risk

import (
	"fmt"
	"math"
	"sort"
)

// CategoryMapping maps the labels of one categorical column to the codes seen in training.
type CategoryMapping struct {
	column string
	codes  map[string]float64
}

func NewCategoryMapping(column string, codes map[string]float64) (CategoryMapping, error) {
	if len(codes) == 0 {
		return CategoryMapping{}, &SchemaError{Column: column, Reason: "mapping is empty"}
	}
	copied := make(map[string]float64, len(codes))
	for label, code := range codes {
		if math.IsNaN(code) || math.IsInf(code, 0) {
			return CategoryMapping{}, &SchemaError{
				Column: column,
				Reason: fmt.Sprintf("code for %q is not finite", label),
			}
		}
		copied[label] = code
	}
	return CategoryMapping{column: column, codes: copied}, nil
}

func (m CategoryMapping) Column() string { return m.column }

// Code returns the code for label. There is no fallback code for unknown labels.
func (m CategoryMapping) Code(label string) (float64, error) {
	code, ok := m.codes[label]
	if !ok {
		return 0, &MappingError{Column: m.column, Value: label}
	}
	return code, nil
}

// Labels returns every mapped label ordered by code, then by label.
func (m CategoryMapping) Labels() []string {
	labels := make([]string, 0, len(m.codes))
	for label := range m.codes {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		ci, cj := m.codes[labels[i]], m.codes[labels[j]]
		if ci != cj {
			return ci < cj
		}
		return labels[i] < labels[j]
	})
	return labels
}

// Covers fails when any of the given labels is missing from the mapping.
func (m CategoryMapping) Covers(labels []string) error {
	for _, label := range labels {
		if _, ok := m.codes[label]; !ok {
			return &SchemaError{
				Column: m.column,
				Reason: fmt.Sprintf("mapping has no code for accepted value %q", label),
			}
		}
	}
	return nil
}

// Restrict returns the mapped labels that are also in allowed, in code order.
func (m CategoryMapping) Restrict(allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	var out []string
	for _, label := range m.Labels() {
		if _, ok := set[label]; ok {
			out = append(out, label)
		}
	}
	return out
}
