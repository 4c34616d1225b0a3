// internal/models/applicant.go
package models

// Column names as the trained classifier knows them.
const (
	ColumnAge                 = "person_age"
	ColumnIncome              = "person_income"
	ColumnEmploymentExp       = "person_emp_exp"
	ColumnHomeOwnership       = "person_home_ownership"
	ColumnLoanAmount          = "loan_amnt"
	ColumnInterestRate        = "loan_int_rate"
	ColumnLoanPercentIncome   = "loan_percent_income"
	ColumnPreviousDefaults    = "previous_loan_defaults_on_file"
	ColumnCreditHistoryLength = "cb_person_cred_hist_length"
	ColumnCreditScore         = "credit_score"
)

// NumericColumns is the exact column set, in order, the standard scaler was fitted on.
var NumericColumns = []string{
	ColumnAge,
	ColumnIncome,
	ColumnEmploymentExp,
	ColumnLoanAmount,
	ColumnInterestRate,
	ColumnLoanPercentIncome,
	ColumnCreditHistoryLength,
	ColumnCreditScore,
}

// CategoricalColumns are replaced by their integer codes before scoring.
var CategoricalColumns = []string{
	ColumnHomeOwnership,
	ColumnPreviousDefaults,
}

// AllColumns returns every column an applicant record carries.
func AllColumns() []string {
	cols := make([]string, 0, len(NumericColumns)+len(CategoricalColumns))
	cols = append(cols, NumericColumns...)
	return append(cols, CategoricalColumns...)
}

type HomeOwnership string

const (
	HomeOwnershipMortgage HomeOwnership = "MORTGAGE"
	HomeOwnershipOther    HomeOwnership = "OTHER"
	HomeOwnershipOwn      HomeOwnership = "OWN"
	HomeOwnershipRent     HomeOwnership = "RENT"
)

// HomeOwnershipValues lists every accepted home ownership label.
var HomeOwnershipValues = []HomeOwnership{
	HomeOwnershipMortgage,
	HomeOwnershipOther,
	HomeOwnershipOwn,
	HomeOwnershipRent,
}

func (h HomeOwnership) Valid() bool {
	for _, v := range HomeOwnershipValues {
		if h == v {
			return true
		}
	}
	return false
}

type PreviousDefaults string

const (
	PreviousDefaultsNo  PreviousDefaults = "No"
	PreviousDefaultsYes PreviousDefaults = "Yes"
)

// PreviousDefaultsValues lists every accepted prior-default label.
var PreviousDefaultsValues = []PreviousDefaults{
	PreviousDefaultsNo,
	PreviousDefaultsYes,
}

func (p PreviousDefaults) Valid() bool {
	for _, v := range PreviousDefaultsValues {
		if p == v {
			return true
		}
	}
	return false
}

// Applicant is a single loan application as entered by the user.
// It is created per request and never persisted.
type Applicant struct {
	Age                  int              `json:"age"`
	Income               float64          `json:"income"`
	EmploymentExperience int              `json:"employmentExperience"`
	HomeOwnership        HomeOwnership    `json:"homeOwnership"`
	LoanAmount           float64          `json:"loanAmount"`
	InterestRate         float64          `json:"interestRate"`
	PreviousDefaults     PreviousDefaults `json:"previousDefaults"`
	CreditHistoryLength  int              `json:"creditHistoryLength"`
	CreditScore          int              `json:"creditScore"`
}

// LoanPercentIncome is loan amount over income, or 0 when income is not positive.
func (a Applicant) LoanPercentIncome() float64 {
	if a.Income <= 0 {
		return 0.0
	}
	return a.LoanAmount / a.Income
}

// NumericValues returns the raw numeric columns, including the derived ratio.
func (a Applicant) NumericValues() map[string]float64 {
	return map[string]float64{
		ColumnAge:                 float64(a.Age),
		ColumnIncome:              a.Income,
		ColumnEmploymentExp:       float64(a.EmploymentExperience),
		ColumnLoanAmount:          a.LoanAmount,
		ColumnInterestRate:        a.InterestRate,
		ColumnLoanPercentIncome:   a.LoanPercentIncome(),
		ColumnCreditHistoryLength: float64(a.CreditHistoryLength),
		ColumnCreditScore:         float64(a.CreditScore),
	}
}

// CategoricalValues returns the categorical columns as their labels.
func (a Applicant) CategoricalValues() map[string]string {
	return map[string]string{
		ColumnHomeOwnership:    string(a.HomeOwnership),
		ColumnPreviousDefaults: string(a.PreviousDefaults),
	}
}
