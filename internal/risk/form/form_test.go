package form

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ansar-mazhar/Loan-Approval-System/internal/common/errors"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
)

type constClassifier struct{}

func (constClassifier) PredictProba(x []float64) ([]float64, error) { return []float64{0.5, 0.5}, nil }
func (constClassifier) NumFeatures() int                            { return 10 }

func testBundle(t *testing.T) *risk.Bundle {
	home, err := risk.NewCategoryMapping(models.ColumnHomeOwnership, map[string]float64{
		"MORTGAGE": 0, "OTHER": 1, "OWN": 2, "RENT": 3, "SHARED": 4,
	})
	require.NoError(t, err)
	prior, err := risk.NewCategoryMapping(models.ColumnPreviousDefaults, map[string]float64{"No": 0, "Yes": 1})
	require.NoError(t, err)
	scaler, err := risk.NewStandardScaler(models.NumericColumns, make([]float64, 8), []float64{1, 1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)

	b, err := risk.NewBundle(constClassifier{}, scaler, home, prior, models.AllColumns(), "form-test")
	require.NoError(t, err)
	return b
}

func validVars() map[string]interface{} {
	return map[string]interface{}{
		"age":                  30.0,
		"income":               40000.0,
		"employmentExperience": 5.0,
		"homeOwnership":        "RENT",
		"loanAmount":           15000.0,
		"interestRate":         15.0,
		"previousDefaults":     "No",
		"creditHistoryLength":  5.0,
		"creditScore":          650.0,
		"applicationRef":       "APP-1",
	}
}

func TestParse_Valid(t *testing.T) {
	a, err := Parse(validVars())
	require.NoError(t, err)

	assert.Equal(t, 30, a.Age)
	assert.Equal(t, 40000.0, a.Income)
	assert.Equal(t, models.HomeOwnershipRent, a.HomeOwnership)
	assert.Equal(t, models.PreviousDefaultsNo, a.PreviousDefaults)
	assert.Equal(t, 650, a.CreditScore)
	assert.Equal(t, 0.375, a.LoanPercentIncome())
}

func TestParse_FromJSON(t *testing.T) {
	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"age": 45, "income": 120000, "employmentExperience": 20, "homeOwnership": "OWN",
		"loanAmount": 20000, "interestRate": 9.5, "previousDefaults": "Yes",
		"creditHistoryLength": 15, "creditScore": 780
	}`), &vars))

	a, err := Parse(vars)
	require.NoError(t, err)
	assert.Equal(t, 45, a.Age)
	assert.Equal(t, models.PreviousDefaultsYes, a.PreviousDefaults)
}

func TestParse_RoundTrip(t *testing.T) {
	original := Defaults(nil)
	a, err := Parse(ToVariables(original))
	require.NoError(t, err)
	assert.Equal(t, original, *a)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		field  string
	}{
		{"age below bound", func(v map[string]interface{}) { v["age"] = 17.0 }, "age"},
		{"age above bound", func(v map[string]interface{}) { v["age"] = 76.0 }, "age"},
		{"fractional age", func(v map[string]interface{}) { v["age"] = 30.5 }, "age"},
		{"income below bound", func(v map[string]interface{}) { v["income"] = 4999.0 }, "income"},
		{"rate above bound", func(v map[string]interface{}) { v["interestRate"] = 30.5 }, "interestRate"},
		{"score below bound", func(v map[string]interface{}) { v["creditScore"] = 299.0 }, "creditScore"},
		{"missing loan", func(v map[string]interface{}) { delete(v, "loanAmount") }, "loanAmount"},
		{"empty ownership", func(v map[string]interface{}) { v["homeOwnership"] = "" }, "homeOwnership"},
		{"string income", func(v map[string]interface{}) { v["income"] = "40000" }, "income"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := validVars()
			tt.mutate(vars)

			_, err := Parse(vars)
			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.True(t, invalid.Result.HasErrors(tt.field), Summary(invalid.Result))
			assert.Equal(t, apperrors.ErrCodeApplicantValidationFailed, ToStandardError(err).Code)
		})
	}
}

func TestParse_UnknownCategory(t *testing.T) {
	vars := validVars()
	vars["homeOwnership"] = "CASTLE"

	_, err := Parse(vars)
	var mapErr *risk.MappingError
	require.True(t, errors.As(err, &mapErr))
	assert.Equal(t, models.ColumnHomeOwnership, mapErr.Column)
	assert.Equal(t, apperrors.ErrCodeCategoryMappingFailed, ToStandardError(err).Code)

	vars = validVars()
	vars["previousDefaults"] = "yes"
	_, err = Parse(vars)
	require.True(t, errors.As(err, &mapErr))
	assert.Equal(t, models.ColumnPreviousDefaults, mapErr.Column)
}

func TestDescribe(t *testing.T) {
	d := Describe(testBundle(t))

	assert.Equal(t, "20%", d.ThresholdDisplay)
	assert.Equal(t, "form-test", d.ModelVersion)
	require.Len(t, d.Fields, 9)

	byName := map[string]Field{}
	for _, f := range d.Fields {
		byName[f.Name] = f
	}
	assert.Equal(t, []string{"MORTGAGE", "OTHER", "OWN", "RENT"}, byName[FieldHomeOwnership].Options)
	assert.Equal(t, "MORTGAGE", byName[FieldHomeOwnership].Default)
	assert.Equal(t, []string{"No", "Yes"}, byName[FieldPreviousDefaults].Options)
	assert.Equal(t, 30, byName[FieldAge].Default)
	assert.Equal(t, 18.0, *byName[FieldAge].Minimum)
	assert.Equal(t, 850.0, *byName[FieldCreditScore].Maximum)
	assert.Equal(t, 15.0, byName[FieldInterestRate].Default)
}

func TestDefaults(t *testing.T) {
	a := Defaults(testBundle(t))
	assert.Equal(t, 30, a.Age)
	assert.Equal(t, 40000.0, a.Income)
	assert.Equal(t, 5, a.EmploymentExperience)
	assert.Equal(t, 15000.0, a.LoanAmount)
	assert.Equal(t, 15.0, a.InterestRate)
	assert.Equal(t, 5, a.CreditHistoryLength)
	assert.Equal(t, 650, a.CreditScore)
	assert.Equal(t, models.HomeOwnershipMortgage, a.HomeOwnership)
	assert.Equal(t, models.PreviousDefaultsNo, a.PreviousDefaults)
	assert.InDelta(t, 0.375, a.LoanPercentIncome(), 1e-12)
}
