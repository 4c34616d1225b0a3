// internal/risk/bundle.go
package risk

import (
	"fmt"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
)

// Bundle is the immutable set of trained artifacts shared by every request.
type Bundle struct {
	Classifier       Classifier
	Scaler           *StandardScaler
	HomeOwnership    CategoryMapping
	PreviousDefaults CategoryMapping
	FeatureOrder     []string
	ModelVersion     string
}

// NewBundle checks that the artifacts agree with each other and with the accepted inputs.
func NewBundle(
	classifier Classifier,
	scaler *StandardScaler,
	homeOwnership, previousDefaults CategoryMapping,
	featureOrder []string,
	modelVersion string,
) (*Bundle, error) {
	if classifier == nil {
		return nil, &SchemaError{Reason: "classifier is missing"}
	}
	if scaler == nil {
		return nil, &SchemaError{Reason: "scaler is missing"}
	}

	if err := checkScalerColumns(scaler.Columns()); err != nil {
		return nil, err
	}
	if err := checkFeatureOrder(featureOrder); err != nil {
		return nil, err
	}
	if classifier.NumFeatures() != len(featureOrder) {
		return nil, &SchemaError{Reason: fmt.Sprintf(
			"classifier expects %d features, feature order has %d", classifier.NumFeatures(), len(featureOrder))}
	}

	if homeOwnership.Column() != models.ColumnHomeOwnership {
		return nil, &SchemaError{Column: homeOwnership.Column(), Reason: "unexpected home ownership mapping column"}
	}
	if previousDefaults.Column() != models.ColumnPreviousDefaults {
		return nil, &SchemaError{Column: previousDefaults.Column(), Reason: "unexpected prior default mapping column"}
	}
	if err := homeOwnership.Covers(homeOwnershipLabels()); err != nil {
		return nil, err
	}
	if err := previousDefaults.Covers(previousDefaultsLabels()); err != nil {
		return nil, err
	}

	return &Bundle{
		Classifier:       classifier,
		Scaler:           scaler,
		HomeOwnership:    homeOwnership,
		PreviousDefaults: previousDefaults,
		FeatureOrder:     append([]string(nil), featureOrder...),
		ModelVersion:     modelVersion,
	}, nil
}

// HomeOwnershipOptions are the labels a user may pick, in code order.
func (b *Bundle) HomeOwnershipOptions() []string {
	return b.HomeOwnership.Restrict(homeOwnershipLabels())
}

// PreviousDefaultsOptions are the labels a user may pick, in code order.
func (b *Bundle) PreviousDefaultsOptions() []string {
	return b.PreviousDefaults.Restrict(previousDefaultsLabels())
}

func checkScalerColumns(columns []string) error {
	if len(columns) != len(models.NumericColumns) {
		return &SchemaError{Reason: fmt.Sprintf(
			"scaler fitted on %d columns, expected %d", len(columns), len(models.NumericColumns))}
	}
	for i, c := range models.NumericColumns {
		if columns[i] != c {
			return &SchemaError{Column: columns[i], Reason: fmt.Sprintf("scaler column %d should be %s", i, c)}
		}
	}
	return nil
}

func checkFeatureOrder(order []string) error {
	expected := models.AllColumns()
	if len(order) != len(expected) {
		return &SchemaError{Reason: fmt.Sprintf("feature order has %d columns, expected %d", len(order), len(expected))}
	}
	want := make(map[string]bool, len(expected))
	for _, c := range expected {
		want[c] = true
	}
	seen := make(map[string]bool, len(order))
	for _, c := range order {
		if !want[c] {
			return &SchemaError{Column: c, Reason: "unknown column in feature order"}
		}
		if seen[c] {
			return &SchemaError{Column: c, Reason: "duplicate column in feature order"}
		}
		seen[c] = true
	}
	return nil
}

func homeOwnershipLabels() []string {
	out := make([]string, len(models.HomeOwnershipValues))
	for i, v := range models.HomeOwnershipValues {
		out[i] = string(v)
	}
	return out
}

func previousDefaultsLabels() []string {
	out := make([]string, len(models.PreviousDefaultsValues))
	for i, v := range models.PreviousDefaultsValues {
		out[i] = string(v)
	}
	return out
}
