package validateapplicantdata

import (
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/validation"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/form"
)

func GetInputSchema() validation.JSONSchema {
	return form.Schema()
}
