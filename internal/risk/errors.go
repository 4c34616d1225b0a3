// internal/risk/errors.go
package risk

import (
	"errors"
	"fmt"

	apperrors "github.com/ansar-mazhar/Loan-Approval-System/internal/common/errors"
)

// MappingError is returned when a categorical label has no code in its mapping.
type MappingError struct {
	Column string
	Value  string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("no category code for %s=%q", e.Column, e.Value)
}

// SchemaError is returned when artifacts disagree with each other or with a record.
type SchemaError struct {
	Reason string
	Column string
}

func (e *SchemaError) Error() string {
	if e.Column == "" {
		return "feature schema mismatch: " + e.Reason
	}
	return fmt.Sprintf("feature schema mismatch on %s: %s", e.Column, e.Reason)
}

// ScalerDomainError is returned when a numeric column cannot be standardized.
type ScalerDomainError struct {
	Column string
	Value  float64
}

func (e *ScalerDomainError) Error() string {
	if e.Column == "" {
		return "scaler received no numeric values"
	}
	return fmt.Sprintf("cannot scale %s: value %v is not finite", e.Column, e.Value)
}

// PredictionError is returned when the classifier rejects a vector or yields a bad distribution.
type PredictionError struct {
	Reason string
}

func (e *PredictionError) Error() string {
	return "prediction failed: " + e.Reason
}

// ToStandardError classifies a pipeline error for the worker and HTTP boundaries.
func ToStandardError(err error) *apperrors.StandardError {
	var (
		mapping *MappingError
		schema  *SchemaError
		domain  *ScalerDomainError
		predict *PredictionError
	)
	switch {
	case errors.As(err, &mapping):
		return apperrors.NewCategoryMappingFailedError(mapping.Column, mapping.Value, err).
			WithMetadata("column", mapping.Column)
	case errors.As(err, &schema):
		return apperrors.NewFeatureSchemaMismatchError(err)
	case errors.As(err, &domain):
		return apperrors.NewScalerDomainError(err).WithMetadata("column", domain.Column)
	case errors.As(err, &predict):
		return apperrors.NewPredictionFailedError(err)
	default:
		return apperrors.Normalize(err)
	}
}
