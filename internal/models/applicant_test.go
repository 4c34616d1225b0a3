package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoanPercentIncome(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		loan     float64
		expected float64
	}{
		{"regular ratio", 40000, 15000, 0.375},
		{"loan equals income", 50000, 50000, 1.0},
		{"zero income guard", 0, 15000, 0.0},
		{"negative income guard", -10, 15000, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Applicant{Income: tt.income, LoanAmount: tt.loan}
			assert.InDelta(t, tt.expected, a.LoanPercentIncome(), 1e-12)
		})
	}
}

func TestNumericValues_CoversScalerColumns(t *testing.T) {
	a := Applicant{
		Age:                  30,
		Income:               40000,
		EmploymentExperience: 5,
		HomeOwnership:        HomeOwnershipRent,
		LoanAmount:           15000,
		InterestRate:         15.0,
		PreviousDefaults:     PreviousDefaultsNo,
		CreditHistoryLength:  5,
		CreditScore:          650,
	}

	values := a.NumericValues()
	assert.Len(t, values, len(NumericColumns))
	for _, col := range NumericColumns {
		assert.Contains(t, values, col)
	}
	assert.Equal(t, 0.375, values[ColumnLoanPercentIncome])
	assert.Equal(t, 650.0, values[ColumnCreditScore])

	cats := a.CategoricalValues()
	assert.Equal(t, "RENT", cats[ColumnHomeOwnership])
	assert.Equal(t, "No", cats[ColumnPreviousDefaults])
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, HomeOwnershipOwn.Valid())
	assert.False(t, HomeOwnership("CASTLE").Valid())
	assert.True(t, PreviousDefaultsYes.Valid())
	assert.False(t, PreviousDefaults("yes").Valid())
}

func TestAllColumns(t *testing.T) {
	cols := AllColumns()
	assert.Len(t, cols, 10)
	assert.ElementsMatch(t, append(append([]string{}, NumericColumns...), CategoricalColumns...), cols)
}

func TestAssessmentFormatting(t *testing.T) {
	assert.Equal(t, "23.41%", FormatProbability(0.23412))
	assert.Equal(t, "0.00%", FormatProbability(0))
	assert.Equal(t, "100.00%", FormatProbability(1))
	assert.Equal(t, "20%", FormatThreshold(0.20))

	assert.Equal(t, "HIGH RISK", VerdictHighRisk.Label())
	assert.Equal(t, "LOW RISK", VerdictLowRisk.Label())
	assert.Equal(t, "Loan Likely to Default", VerdictHighRisk.Summary())

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	vars := Assessment{
		AssessmentID: "a-1",
		Probability:  0.5,
		Verdict:      VerdictHighRisk,
		AssessedAt:   at,
	}.ToVariables()
	assert.Equal(t, "HIGH_RISK", vars["verdict"])
	assert.Equal(t, "2024-05-01T10:00:00Z", vars["assessedAt"])
}
