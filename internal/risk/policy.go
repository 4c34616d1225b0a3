// internal/risk/policy.go
package risk

import "github.com/ansar-mazhar/Loan-Approval-System/internal/models"

// DecisionThreshold is fixed for the process and not user configurable.
const DecisionThreshold = 0.20

// Decide labels a probability; the threshold itself is high risk.
func Decide(probability float64) models.Verdict {
	if probability >= DecisionThreshold {
		return models.VerdictHighRisk
	}
	return models.VerdictLowRisk
}
