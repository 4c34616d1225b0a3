package assessdefaultrisk

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/camunda/camundatest"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/common/logger"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/models"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk"
	"github.com/ansar-mazhar/Loan-Approval-System/internal/risk/artifactstore"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Execute(ctx context.Context, applicant models.Applicant) (*Output, error) {
	args := m.Called(ctx, applicant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Output), args.Error(1)
}

var fixedTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func loadAssessor(t *testing.T) *risk.Assessor {
	t.Helper()
	bundle, err := artifactstore.NewStore(artifactstore.NewFileSource("../../../../artifacts"), logger.NewNoOpLogger(), "").
		Load(context.Background())
	require.NoError(t, err)
	return risk.NewAssessor(bundle, logger.NewNoOpLogger(),
		risk.WithClock(func() time.Time { return fixedTime }),
		risk.WithIDGenerator(func() string { return "assessment-1" }),
	)
}

func scenarioVariables() map[string]interface{} {
	return map[string]interface{}{
		"age":                  30,
		"income":               40000,
		"employmentExperience": 5,
		"homeOwnership":        "MORTGAGE",
		"loanAmount":           15000,
		"interestRate":         15.0,
		"previousDefaults":     "No",
		"creditHistoryLength":  5,
		"creditScore":          650,
	}
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{Assessor: loadAssessor(t), Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	return h
}

func TestHandler_NewHandler(t *testing.T) {
	_, err := NewHandler(HandlerOptions{})
	assert.ErrorContains(t, err, "assessor is required")

	_, err = NewHandler(HandlerOptions{CustomConfig: &Config{MaxJobsActive: 1}, Assessor: loadAssessor(t)})
	assert.ErrorContains(t, err, "timeout must be positive")

	h, err := NewHandler(HandlerOptions{Assessor: loadAssessor(t)})
	require.NoError(t, err)
	assert.Equal(t, TaskType, h.GetTaskType())
	assert.Equal(t, DefaultConfig(), h.GetConfig())
}

func TestHandler_Scenario(t *testing.T) {
	client := camundatest.NewJobClient()
	newTestHandler(t).Handle(client, camundatest.NewJob(1, TaskType, 3, scenarioVariables()))

	require.Len(t, client.Completed, 1)
	vars := client.CompletedVariables()
	assert.Equal(t, "assessment-1", vars["assessmentId"])
	assert.Equal(t, "HIGH_RISK", vars["verdict"])
	assert.Equal(t, "HIGH RISK", vars["verdictLabel"])
	assert.Equal(t, "Loan Likely to Default", vars["verdictSummary"])
	assert.Equal(t, "20%", vars["thresholdDisplay"])
	assert.InDelta(t, 0.20, vars["threshold"], 1e-12)
	assert.InDelta(t, 0.375, vars["loanPercentIncome"], 1e-12)
	assert.InDelta(t, 0.95564, vars["probability"], 1e-4)
	assert.Equal(t, "loan-default-lr-2024.06", vars["modelVersion"])
	assert.Equal(t, "2024-06-01T12:00:00Z", vars["assessedAt"])
}

func TestHandler_PriorDefaultIsLowRisk(t *testing.T) {
	vars := scenarioVariables()
	vars["previousDefaults"] = "Yes"

	client := camundatest.NewJobClient()
	newTestHandler(t).Handle(client, camundatest.NewJob(2, TaskType, 3, vars))

	out := client.CompletedVariables()
	assert.Equal(t, "LOW_RISK", out["verdict"])
	assert.Equal(t, "Loan Likely Safe", out["verdictSummary"])
}

func TestHandler_Deterministic(t *testing.T) {
	h := newTestHandler(t)
	first := camundatest.NewJobClient()
	second := camundatest.NewJobClient()
	h.Handle(first, camundatest.NewJob(3, TaskType, 3, scenarioVariables()))
	h.Handle(second, camundatest.NewJob(4, TaskType, 3, scenarioVariables()))
	assert.Equal(t, first.CompletedVariables(), second.CompletedVariables())
}

func TestHandler_InvalidInputThrows(t *testing.T) {
	vars := scenarioVariables()
	vars["interestRate"] = 31.0

	client := camundatest.NewJobClient()
	newTestHandler(t).Handle(client, camundatest.NewJob(5, TaskType, 3, vars))

	assert.Empty(t, client.Completed)
	require.Len(t, client.Thrown, 1)
	assert.Equal(t, "APPLICANT_VALIDATION_FAILED", client.Thrown[0].ErrorCode)
	assert.Contains(t, client.ThrownVariables(), "validationErrors")
}

func TestHandler_PipelineErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantThrown  string
		wantFailed  bool
		wantMessage string
	}{
		{
			name:       "mapping error is a business error",
			err:        &risk.MappingError{Column: models.ColumnHomeOwnership, Value: "SHARED"},
			wantThrown: "CATEGORY_MAPPING_FAILED",
		},
		{
			name:        "prediction error raises an incident",
			err:         &risk.PredictionError{Reason: "probability 1.3 outside [0, 1]"},
			wantFailed:  true,
			wantMessage: "PREDICTION_FAILED",
		},
		{
			name:        "schema error raises an incident",
			err:         &risk.SchemaError{Reason: "missing column", Column: models.ColumnCreditScore},
			wantFailed:  true,
			wantMessage: "FEATURE_SCHEMA_MISMATCH",
		},
		{
			name:        "scaler domain error raises an incident",
			err:         &risk.ScalerDomainError{Column: models.ColumnIncome, Value: math.Inf(1)},
			wantFailed:  true,
			wantMessage: "SCALER_DOMAIN_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			svc := &MockService{}
			svc.On("Execute", mock.Anything, mock.AnythingOfType("models.Applicant")).Return(nil, tt.err)
			h.service = svc

			client := camundatest.NewJobClient()
			h.Handle(client, camundatest.NewJob(6, TaskType, 3, scenarioVariables()))

			assert.Empty(t, client.Completed)
			if tt.wantThrown != "" {
				require.Len(t, client.Thrown, 1)
				assert.Equal(t, tt.wantThrown, client.Thrown[0].ErrorCode)
			}
			if tt.wantFailed {
				require.Len(t, client.Failed, 1)
				assert.Equal(t, int32(0), client.Failed[0].Retries)
				assert.Empty(t, client.Thrown)
				assert.Contains(t, client.Failed[0].Variables, tt.wantMessage)
			}
			svc.AssertExpectations(t)
		})
	}
}

func BenchmarkHandler_AssessDefaultRisk(b *testing.B) {
	bundle, err := artifactstore.NewStore(artifactstore.NewFileSource("../../../../artifacts"), logger.NewNoOpLogger(), "").
		Load(context.Background())
	require.NoError(b, err)

	h, err := NewHandler(HandlerOptions{Assessor: risk.NewAssessor(bundle, logger.NewNoOpLogger()), Logger: logger.NewNoOpLogger()})
	require.NoError(b, err)

	vars := scenarioVariables()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Handle(camundatest.NewJobClient(), camundatest.NewJob(int64(i), TaskType, 3, vars))
	}
}
