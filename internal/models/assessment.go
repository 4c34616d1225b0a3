// internal/models/assessment.go
package models

import (
	"fmt"
	"time"
)

type Verdict string

const (
	VerdictHighRisk Verdict = "HIGH_RISK"
	VerdictLowRisk  Verdict = "LOW_RISK"
)

// Label is the human readable form shown next to the probability.
func (v Verdict) Label() string {
	switch v {
	case VerdictHighRisk:
		return "HIGH RISK"
	case VerdictLowRisk:
		return "LOW RISK"
	default:
		return string(v)
	}
}

// Summary is the one-line explanation of the verdict.
func (v Verdict) Summary() string {
	switch v {
	case VerdictHighRisk:
		return "Loan Likely to Default"
	case VerdictLowRisk:
		return "Loan Likely Safe"
	default:
		return ""
	}
}

type Assessment struct {
	AssessmentID       string    `json:"assessmentId"`
	Probability        float64   `json:"probability"`
	ProbabilityDisplay string    `json:"probabilityDisplay"`
	Verdict            Verdict   `json:"verdict"`
	VerdictLabel       string    `json:"verdictLabel"`
	VerdictSummary     string    `json:"verdictSummary"`
	Threshold          float64   `json:"threshold"`
	ThresholdDisplay   string    `json:"thresholdDisplay"`
	LoanPercentIncome  float64   `json:"loanPercentIncome"`
	ModelVersion       string    `json:"modelVersion"`
	AssessedAt         time.Time `json:"assessedAt"`
}

// FormatProbability renders a probability as a percentage with two decimals, e.g. "23.41%".
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

// FormatThreshold renders the decision threshold as a whole percentage, e.g. "20%".
func FormatThreshold(t float64) string {
	return fmt.Sprintf("%.0f%%", t*100)
}

// ToVariables flattens the assessment into process variables.
func (a Assessment) ToVariables() map[string]interface{} {
	return map[string]interface{}{
		"assessmentId":       a.AssessmentID,
		"probability":        a.Probability,
		"probabilityDisplay": a.ProbabilityDisplay,
		"verdict":            string(a.Verdict),
		"verdictLabel":       a.VerdictLabel,
		"verdictSummary":     a.VerdictSummary,
		"threshold":          a.Threshold,
		"thresholdDisplay":   a.ThresholdDisplay,
		"loanPercentIncome":  a.LoanPercentIncome,
		"modelVersion":       a.ModelVersion,
		"assessedAt":         a.AssessedAt.Format(time.RFC3339),
	}
}
