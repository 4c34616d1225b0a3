package assessdefaultrisk

import (
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/form"
)

// parseInput validates the applicant variables with the same bounds as the form.
func parseInput(variables map[string]interface{}) (*models.Applicant, error) {
	return form.Parse(variables)
}
