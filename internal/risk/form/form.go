// internal/risk/form/form.go
package form

import (
	"errors"
	"strings"

	apperrors "github.com/ansar-mazhar/Loan-Approval-System/internal/common/errors"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/validation"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
)

// Variable names used by job variables and the JSON API.
const (
	FieldAge                  = "age"
	FieldIncome               = "income"
	FieldEmploymentExperience = "employmentExperience"
	FieldHomeOwnership        = "homeOwnership"
	FieldLoanAmount           = "loanAmount"
	FieldInterestRate         = "interestRate"
	FieldPreviousDefaults     = "previousDefaults"
	FieldCreditHistoryLength  = "creditHistoryLength"
	FieldCreditScore          = "creditScore"
)

// Field describes one input as presented to the user.
type Field struct {
	Name    string      `json:"name"`
	Column  string      `json:"column"`
	Label   string      `json:"label"`
	Type    string      `json:"type"`
	Minimum *float64    `json:"minimum,omitempty"`
	Maximum *float64    `json:"maximum,omitempty"`
	Step    float64     `json:"step,omitempty"`
	Default interface{} `json:"default,omitempty"`
	Options []string    `json:"options,omitempty"`
}

// Description is everything a client needs to render the applicant form.
type Description struct {
	Fields           []Field `json:"fields"`
	ThresholdDisplay string  `json:"thresholdDisplay"`
	ModelVersion     string  `json:"modelVersion"`
}

var numericFields = []Field{
	{Name: FieldAge, Column: models.ColumnAge, Label: "Age", Type: "integer",
		Minimum: validation.Float64Ptr(18), Maximum: validation.Float64Ptr(75), Step: 1, Default: 30},
	{Name: FieldIncome, Column: models.ColumnIncome, Label: "Annual Income", Type: "number",
		Minimum: validation.Float64Ptr(5000), Maximum: validation.Float64Ptr(500000), Step: 1000, Default: 40000.0},
	{Name: FieldEmploymentExperience, Column: models.ColumnEmploymentExp, Label: "Employment Experience (years)", Type: "integer",
		Minimum: validation.Float64Ptr(0), Maximum: validation.Float64Ptr(40), Step: 1, Default: 5},
	{Name: FieldLoanAmount, Column: models.ColumnLoanAmount, Label: "Loan Amount", Type: "number",
		Minimum: validation.Float64Ptr(1000), Maximum: validation.Float64Ptr(500000), Step: 1000, Default: 15000.0},
	{Name: FieldInterestRate, Column: models.ColumnInterestRate, Label: "Interest Rate (%)", Type: "number",
		Minimum: validation.Float64Ptr(5.0), Maximum: validation.Float64Ptr(30.0), Step: 0.1, Default: 15.0},
	{Name: FieldCreditHistoryLength, Column: models.ColumnCreditHistoryLength, Label: "Credit History Length (years)", Type: "integer",
		Minimum: validation.Float64Ptr(0), Maximum: validation.Float64Ptr(40), Step: 1, Default: 5},
	{Name: FieldCreditScore, Column: models.ColumnCreditScore, Label: "Credit Score", Type: "integer",
		Minimum: validation.Float64Ptr(300), Maximum: validation.Float64Ptr(850), Step: 1, Default: 650},
}

// Defaults returns the pre-filled applicant. Categorical fields default to the first
// option in code order.
func Defaults(b *risk.Bundle) models.Applicant {
	a := models.Applicant{
		Age:                  30,
		Income:               40000,
		EmploymentExperience: 5,
		LoanAmount:           15000,
		InterestRate:         15.0,
		CreditHistoryLength:  5,
		CreditScore:          650,
		HomeOwnership:        models.HomeOwnershipValues[0],
		PreviousDefaults:     models.PreviousDefaultsValues[0],
	}
	if b != nil {
		if opts := b.HomeOwnershipOptions(); len(opts) > 0 {
			a.HomeOwnership = models.HomeOwnership(opts[0])
		}
		if opts := b.PreviousDefaultsOptions(); len(opts) > 0 {
			a.PreviousDefaults = models.PreviousDefaults(opts[0])
		}
	}
	return a
}

// Describe lists the fields with bounds, defaults and the selectable categories.
func Describe(b *risk.Bundle) Description {
	defaults := Defaults(b)
	fields := make([]Field, 0, len(numericFields)+2)
	fields = append(fields, numericFields...)
	fields = append(fields,
		Field{
			Name: FieldHomeOwnership, Column: models.ColumnHomeOwnership, Label: "Home Ownership", Type: "string",
			Default: string(defaults.HomeOwnership), Options: b.HomeOwnershipOptions(),
		},
		Field{
			Name: FieldPreviousDefaults, Column: models.ColumnPreviousDefaults, Label: "Previous Loan Defaults on File", Type: "string",
			Default: string(defaults.PreviousDefaults), Options: b.PreviousDefaultsOptions(),
		},
	)
	return Description{
		Fields:           fields,
		ThresholdDisplay: models.FormatThreshold(risk.DecisionThreshold),
		ModelVersion:     b.ModelVersion,
	}
}

// Schema is the validation schema for an applicant submitted as variables.
func Schema() validation.JSONSchema {
	props := make(map[string]validation.Property, len(numericFields)+2)
	required := make([]string, 0, len(numericFields)+2)
	for _, f := range numericFields {
		props[f.Name] = validation.Property{
			Type:        f.Type,
			Description: f.Label,
			Minimum:     f.Minimum,
			Maximum:     f.Maximum,
		}
		required = append(required, f.Name)
	}

	// Categorical labels are checked against the accepted values after validation.
	props[FieldHomeOwnership] = validation.Property{Type: "string", Description: "Home Ownership", MinLength: validation.IntPtr(1)}
	props[FieldPreviousDefaults] = validation.Property{Type: "string", Description: "Previous Loan Defaults on File", MinLength: validation.IntPtr(1)}
	required = append(required, FieldHomeOwnership, FieldPreviousDefaults)

	return validation.JSONSchema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: true,
	}
}

// InvalidInputError carries every field that failed validation.
type InvalidInputError struct {
	Result *validation.ValidationResult
}

func (e *InvalidInputError) Error() string {
	return "invalid applicant: " + Summary(e.Result)
}

// Parse validates raw variables and builds an applicant from them.
// Only the applicant fields are inspected; other variables are ignored.
// Bound and type violations yield *InvalidInputError; a categorical label
// outside the accepted values yields *risk.MappingError.
func Parse(vars map[string]interface{}) (*models.Applicant, error) {
	input := make(map[string]interface{}, len(numericFields)+2)
	for _, name := range FieldNames() {
		if v, ok := vars[name]; ok {
			input[name] = v
		}
	}

	result := validation.ValidateInput(input, Schema())
	if !result.Valid {
		return nil, &InvalidInputError{Result: result}
	}

	home := models.HomeOwnership(input[FieldHomeOwnership].(string))
	if !home.Valid() {
		return nil, &risk.MappingError{Column: models.ColumnHomeOwnership, Value: string(home)}
	}
	prior := models.PreviousDefaults(input[FieldPreviousDefaults].(string))
	if !prior.Valid() {
		return nil, &risk.MappingError{Column: models.ColumnPreviousDefaults, Value: string(prior)}
	}

	num := func(name string) float64 {
		f, _ := validation.ToFloat(input[name])
		return f
	}
	return &models.Applicant{
		Age:                  int(num(FieldAge)),
		Income:               num(FieldIncome),
		EmploymentExperience: int(num(FieldEmploymentExperience)),
		HomeOwnership:        home,
		LoanAmount:           num(FieldLoanAmount),
		InterestRate:         num(FieldInterestRate),
		PreviousDefaults:     prior,
		CreditHistoryLength:  int(num(FieldCreditHistoryLength)),
		CreditScore:          int(num(FieldCreditScore)),
	}, nil
}

// ToStandardError classifies a Parse or assessment error.
func ToStandardError(err error) *apperrors.StandardError {
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return apperrors.NewApplicantValidationFailedError(Summary(invalid.Result)).
			WithMetadata("validationErrors", invalid.Result.Errors)
	}
	return risk.ToStandardError(err)
}

// ToVariables is the inverse of Parse.
func ToVariables(a models.Applicant) map[string]interface{} {
	return map[string]interface{}{
		FieldAge:                  a.Age,
		FieldIncome:               a.Income,
		FieldEmploymentExperience: a.EmploymentExperience,
		FieldHomeOwnership:        string(a.HomeOwnership),
		FieldLoanAmount:           a.LoanAmount,
		FieldInterestRate:         a.InterestRate,
		FieldPreviousDefaults:     string(a.PreviousDefaults),
		FieldCreditHistoryLength:  a.CreditHistoryLength,
		FieldCreditScore:          a.CreditScore,
	}
}

// FieldNames returns every applicant variable name.
func FieldNames() []string {
	names := make([]string, 0, len(numericFields)+2)
	for _, f := range numericFields {
		names = append(names, f.Name)
	}
	return append(names, FieldHomeOwnership, FieldPreviousDefaults)
}

// FieldForColumn maps a feature column back to its variable name.
func FieldForColumn(column string) string {
	switch column {
	case models.ColumnHomeOwnership:
		return FieldHomeOwnership
	case models.ColumnPreviousDefaults:
		return FieldPreviousDefaults
	}
	for _, f := range numericFields {
		if f.Column == column {
			return f.Name
		}
	}
	return column
}

// Summary joins validation messages into one line.
func Summary(result *validation.ValidationResult) string {
	if result == nil {
		return ""
	}
	return strings.Join(result.GetErrorMessages(), "; ")
}
