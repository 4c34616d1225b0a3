// internal/risk/transformer.go
package risk

import "github.com/ansar-mazhar/Loan-Approval-System/internal/models"

// FeatureVector is a transformed record, values aligned with Columns.
type FeatureVector struct {
	Columns []string
	Values  []float64
}

// Value returns the value for a column name.
func (v *FeatureVector) Value(column string) (float64, bool) {
	for i, c := range v.Columns {
		if c == column {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Transformer turns an applicant into the vector the classifier was trained on.
type Transformer struct {
	bundle *Bundle
}

func NewTransformer(b *Bundle) *Transformer {
	return &Transformer{bundle: b}
}

// Transform maps categoricals, standardizes numerics and assembles in feature order.
// It is a pure function of the applicant and the bundle.
func (t *Transformer) Transform(a models.Applicant) (*FeatureVector, error) {
	record := make(map[string]float64, len(t.bundle.FeatureOrder))

	cats := a.CategoricalValues()
	for _, m := range []CategoryMapping{t.bundle.HomeOwnership, t.bundle.PreviousDefaults} {
		code, err := m.Code(cats[m.Column()])
		if err != nil {
			return nil, err
		}
		record[m.Column()] = code
	}

	scaled, err := t.bundle.Scaler.Transform(a.NumericValues())
	if err != nil {
		return nil, err
	}
	for c, v := range scaled {
		record[c] = v
	}

	return assemble(record, t.bundle.FeatureOrder)
}

func assemble(record map[string]float64, order []string) (*FeatureVector, error) {
	vec := &FeatureVector{
		Columns: append([]string(nil), order...),
		Values:  make([]float64, len(order)),
	}
	for i, c := range order {
		v, ok := record[c]
		if !ok {
			return nil, &SchemaError{Column: c, Reason: "column in feature order is missing from record"}
		}
		vec.Values[i] = v
	}
	return vec, nil
}
