package risk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
)

var testFeatureOrder = []string{
	models.ColumnAge,
	models.ColumnIncome,
	models.ColumnEmploymentExp,
	models.ColumnHomeOwnership,
	models.ColumnLoanAmount,
	models.ColumnInterestRate,
	models.ColumnLoanPercentIncome,
	models.ColumnCreditHistoryLength,
	models.ColumnCreditScore,
	models.ColumnPreviousDefaults,
}

// stubClassifier returns a fixed distribution and remembers the last vector it saw.
type stubClassifier struct {
	dist []float64
	err  error
	n    int
	seen []float64
}

func (s *stubClassifier) PredictProba(x []float64) ([]float64, error) {
	s.seen = append([]float64(nil), x...)
	if s.err != nil {
		return nil, s.err
	}
	return s.dist, nil
}

func (s *stubClassifier) NumFeatures() int {
	if s.n == 0 {
		return len(testFeatureOrder)
	}
	return s.n
}

func homeMapping(t testing.TB) CategoryMapping {
	m, err := NewCategoryMapping(models.ColumnHomeOwnership, map[string]float64{
		"MORTGAGE": 0, "OTHER": 1, "OWN": 2, "RENT": 3,
	})
	require.NoError(t, err)
	return m
}

func defaultsMapping(t testing.TB) CategoryMapping {
	m, err := NewCategoryMapping(models.ColumnPreviousDefaults, map[string]float64{
		"No": 0, "Yes": 1,
	})
	require.NoError(t, err)
	return m
}

// identityScaler leaves numeric values untouched so assembled vectors can be read back.
func identityScaler(t testing.TB) *StandardScaler {
	n := len(models.NumericColumns)
	mean := make([]float64, n)
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1
	}
	s, err := NewStandardScaler(models.NumericColumns, mean, scale)
	require.NoError(t, err)
	return s
}

func fittedScaler(t testing.TB) *StandardScaler {
	s, err := NewStandardScaler(models.NumericColumns,
		[]float64{27.76, 80319.05, 5.41, 9583.16, 11.01, 0.14, 5.87, 632.61},
		[]float64{6.05, 80421.5, 6.06, 6314.82, 2.98, 0.087, 3.88, 50.44},
	)
	require.NoError(t, err)
	return s
}

func testBundle(t testing.TB, c Classifier, s *StandardScaler) *Bundle {
	b, err := NewBundle(c, s, homeMapping(t), defaultsMapping(t), testFeatureOrder, "test-v1")
	require.NoError(t, err)
	return b
}

func scenarioApplicant() models.Applicant {
	return models.Applicant{
		Age:                  30,
		Income:               40000,
		EmploymentExperience: 5,
		HomeOwnership:        models.HomeOwnershipMortgage,
		LoanAmount:           15000,
		InterestRate:         15.0,
		PreviousDefaults:     models.PreviousDefaultsNo,
		CreditHistoryLength:  5,
		CreditScore:          650,
	}
}
