package notifyriskreview

import (
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/validation"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
)

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"assessmentId": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
			},
			"applicationId": {
				Type: "string",
			},
			"verdict": {
				Type: "string",
				Enum: []string{string(models.VerdictHighRisk), string(models.VerdictLowRisk)},
			},
			"probability": {
				Type:    "number",
				Minimum: validation.Float64Ptr(0),
				Maximum: validation.Float64Ptr(1),
			},
			"probabilityDisplay": {
				Type:      "string",
				MinLength: validation.IntPtr(1),
			},
		},
		Required:             []string{"assessmentId", "verdict", "probability", "probabilityDisplay"},
		AdditionalProperties: true,
	}
}
