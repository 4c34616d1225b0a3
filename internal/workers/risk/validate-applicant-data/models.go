package validateapplicantdata

import (
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/validation"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
)

type Output struct {
	IsValid           bool                         `json:"isValid"`
	Applicant         *models.Applicant            `json:"applicant,omitempty"`
	LoanPercentIncome float64                      `json:"loanPercentIncome"`
	ValidationErrors  []validation.ValidationError `json:"validationErrors"`
}

// ToVariables flattens the output into process variables. The normalised
// applicant fields are written at top level so downstream tasks read them
// under the same names.
func (o *Output) ToVariables(applicantVars map[string]interface{}) map[string]interface{} {
	vars := make(map[string]interface{}, len(applicantVars)+3)
	for k, v := range applicantVars {
		vars[k] = v
	}
	errs := o.ValidationErrors
	if errs == nil {
		errs = []validation.ValidationError{}
	}
	vars["isValid"] = o.IsValid
	vars["loanPercentIncome"] = o.LoanPercentIncome
	vars["validationErrors"] = errs
	return vars
}
