// internal/risk/assessor.go
package risk

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/metrics"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
)

// Assessor runs transform, score and decide for one applicant at a time.
// It holds no mutable state and is safe for concurrent use.
type Assessor struct {
	bundle      *Bundle
	transformer *Transformer
	scorer      *Scorer
	logger      logger.Logger
	now         func() time.Time
	newID       func() string
}

type AssessorOption func(*Assessor)

// WithClock overrides the time source used for assessedAt.
func WithClock(now func() time.Time) AssessorOption {
	return func(a *Assessor) { a.now = now }
}

// WithIDGenerator overrides how assessment IDs are generated.
func WithIDGenerator(newID func() string) AssessorOption {
	return func(a *Assessor) { a.newID = newID }
}

func NewAssessor(b *Bundle, log logger.Logger, opts ...AssessorOption) *Assessor {
	a := &Assessor{
		bundle:      b,
		transformer: NewTransformer(b),
		scorer:      NewScorer(b.Classifier),
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Assessor) Bundle() *Bundle { return a.bundle }

// Assess returns the default-risk assessment for one applicant.
// The context is only used for log correlation; the pipeline itself does no I/O.
func (a *Assessor) Assess(_ context.Context, applicant models.Applicant) (*models.Assessment, error) {
	vec, err := a.transformer.Transform(applicant)
	if err != nil {
		return nil, a.fail(err)
	}

	probability, err := a.scorer.Score(vec)
	if err != nil {
		return nil, a.fail(err)
	}

	verdict := Decide(probability)
	assessment := &models.Assessment{
		AssessmentID:       a.newID(),
		Probability:        probability,
		ProbabilityDisplay: models.FormatProbability(probability),
		Verdict:            verdict,
		VerdictLabel:       verdict.Label(),
		VerdictSummary:     verdict.Summary(),
		Threshold:          DecisionThreshold,
		ThresholdDisplay:   models.FormatThreshold(DecisionThreshold),
		LoanPercentIncome:  applicant.LoanPercentIncome(),
		ModelVersion:       a.bundle.ModelVersion,
		AssessedAt:         a.now(),
	}

	metrics.RiskAssessments.WithLabelValues(string(verdict), a.bundle.ModelVersion).Inc()
	metrics.RiskProbability.Observe(probability)

	a.logger.Info("Default risk assessed", map[string]interface{}{
		"assessmentId":      assessment.AssessmentID,
		"probability":       probability,
		"verdict":           string(verdict),
		"loanPercentIncome": assessment.LoanPercentIncome,
		"modelVersion":      assessment.ModelVersion,
	})

	return assessment, nil
}

func (a *Assessor) fail(err error) error {
	stdErr := ToStandardError(err)
	metrics.RiskAssessmentErrors.WithLabelValues(string(stdErr.Code)).Inc()
	a.logger.Warn("Default risk assessment failed", map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"error":     err.Error(),
	})
	return err
}
