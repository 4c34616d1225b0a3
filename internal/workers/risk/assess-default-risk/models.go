package assessdefaultrisk

import (
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
)

// Output is the assessment returned to the process. Applicant fields are not
// echoed; they are already process variables.
type Output struct {
	Assessment *models.Assessment
}

func (o *Output) ToVariables() map[string]interface{} {
	return o.Assessment.ToVariables()
}
